package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	if !c.Has("student", "attempt:create") {
		t.Error("student should create attempts")
	}
	if c.Has("student", "content:edit") {
		t.Error("student must not edit content")
	}
	if !c.Has("admin", "content:edit") || !c.Has("admin", "exercise:edit") {
		t.Error("admin wildcard should cover authoring perms")
	}
	if c.Has("ghost", "content:view") {
		t.Error("unknown role has no permissions")
	}
}

func TestMatchPermPrefix(t *testing.T) {
	c := NewChecker(map[string][]string{"editor": {"content:*"}})
	if !c.Has("editor", "content:edit") {
		t.Error("prefix wildcard should match")
	}
	if c.Has("editor", "exercise:edit") {
		t.Error("prefix wildcard must not leak across domains")
	}
}

func TestCheckerAnyAll(t *testing.T) {
	c := NewChecker(nil)

	if !c.Any("student", "exercise:edit", "exercise:view") {
		t.Error("Any should pass when one permission matches")
	}
	if c.Any("student", "content:edit", "exercise:edit") {
		t.Error("Any should fail when none match")
	}
	if !c.All("student", "content:view", "exercise:view") {
		t.Error("All should pass when every permission matches")
	}
	if c.All("student", "content:view", "content:edit") {
		t.Error("All should fail on one missing permission")
	}
}

func TestRequireAnyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAny("exercise:view", "exercise:edit")(next)

	cases := []struct {
		role string
		want int
	}{
		{"student", http.StatusNoContent},
		{"admin", http.StatusNoContent},
		{"", http.StatusForbidden},
		{"ghost", http.StatusForbidden},
	}
	for _, c := range cases {
		req := httptest.NewRequest("GET", "/exercises/e1", nil)
		if c.role != "" {
			req = req.WithContext(WithRole(req.Context(), c.role))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Errorf("role %q: status = %d, want %d", c.role, rec.Code, c.want)
		}
	}
}
