package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlinalg/practice-server/internal/content"
	"github.com/openlinalg/practice-server/internal/validate"
)

// Structure authoring. Each level follows the same shape: validate the form,
// upsert, answer with an ActionResult.

func UpsertUnitHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in content.UnitInput
		if !decodeBody(w, r, &in) {
			return
		}
		if in.Position == 0 {
			in.Position = 1
		}
		if err := validate.V.Struct(in); err != nil {
			fail(w, nethttp.StatusBadRequest, validate.FirstError(err))
			return
		}
		creating := in.ID == ""
		u, err := store.UpsertUnit(r.Context(), in)
		if err != nil {
			if creating {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Create failed"))
			} else {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Update failed"))
			}
			return
		}
		if creating {
			ok(w, "Unit created", u.ID)
		} else {
			ok(w, "Unit updated", u.ID)
		}
	}
}

func DeleteUnitHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "unitID")
		if err := store.DeleteUnit(r.Context(), id); err != nil {
			fail(w, nethttp.StatusInternalServerError, errMessage(err, "Delete failed"))
			return
		}
		ok(w, "Unit deleted", "")
	}
}

func UpsertThemeHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in content.ThemeInput
		if !decodeBody(w, r, &in) {
			return
		}
		if in.Position == 0 {
			in.Position = 1
		}
		if err := validate.V.Struct(in); err != nil {
			fail(w, nethttp.StatusBadRequest, validate.FirstError(err))
			return
		}
		creating := in.ID == ""
		t, err := store.UpsertTheme(r.Context(), in)
		if err != nil {
			if creating {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Create failed"))
			} else {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Update failed"))
			}
			return
		}
		if creating {
			ok(w, "Theme created", t.ID)
		} else {
			ok(w, "Theme updated", t.ID)
		}
	}
}

func DeleteThemeHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "themeID")
		if err := store.DeleteTheme(r.Context(), id); err != nil {
			fail(w, nethttp.StatusInternalServerError, errMessage(err, "Delete failed"))
			return
		}
		ok(w, "Theme deleted", "")
	}
}

func UpsertSubthemeHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in content.SubthemeInput
		if !decodeBody(w, r, &in) {
			return
		}
		if in.Position == 0 {
			in.Position = 1
		}
		if err := validate.V.Struct(in); err != nil {
			fail(w, nethttp.StatusBadRequest, validate.FirstError(err))
			return
		}
		creating := in.ID == ""
		st, err := store.UpsertSubtheme(r.Context(), in)
		if err != nil {
			if creating {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Create failed"))
			} else {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Update failed"))
			}
			return
		}
		if creating {
			ok(w, "Subtheme created", st.ID)
		} else {
			ok(w, "Subtheme updated", st.ID)
		}
	}
}

func DeleteSubthemeHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "subthemeID")
		if err := store.DeleteSubtheme(r.Context(), id); err != nil {
			fail(w, nethttp.StatusInternalServerError, errMessage(err, "Delete failed"))
			return
		}
		ok(w, "Subtheme deleted", "")
	}
}
