package progress

import (
	"testing"

	"github.com/openlinalg/practice-server/internal/content"
	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/practice"
)

func fixture() ([]content.Unit, []content.Theme, []content.Subtheme, []exercise.Exercise) {
	units := []content.Unit{{ID: "u1", Slug: "vectors", Title: "Vectors"}}
	themes := []content.Theme{{ID: "t1", UnitID: "u1", Slug: "basics", Title: "Basics"}}
	subthemes := []content.Subtheme{
		{ID: "s1", ThemeID: "t1", Slug: "reading", Title: "Reading"},
		{ID: "s2", ThemeID: "t1", Slug: "plotting", Title: "Plotting"},
	}
	exercises := []exercise.Exercise{
		{ID: "e1", SubthemeID: "s1", Status: exercise.StatusPublished},
		{ID: "e2", SubthemeID: "s1", Status: exercise.StatusPublished},
		{ID: "e3", SubthemeID: "s2", Status: exercise.StatusPublished},
		{ID: "e4", SubthemeID: "s2", Status: exercise.StatusDraft},
	}
	return units, themes, subthemes, exercises
}

func TestSolvedIsPermanent(t *testing.T) {
	attempts := []practice.Attempt{
		{ExerciseID: "e1", IsCorrect: true},
		{ExerciseID: "e1", IsCorrect: false},
	}
	if !SolvedSet(attempts)["e1"] {
		t.Error("a later incorrect attempt must not un-solve an exercise")
	}
}

func TestComputeRollup(t *testing.T) {
	units, themes, subthemes, exercises := fixture()
	attempts := []practice.Attempt{
		{ExerciseID: "e1", IsCorrect: false},
		{ExerciseID: "e1", IsCorrect: true},
		{ExerciseID: "e3", IsCorrect: true},
		{ExerciseID: "e4", IsCorrect: true}, // draft, must not count
	}
	r := Compute(units, themes, subthemes, exercises, attempts)

	if len(r.Subthemes) != 2 {
		t.Fatalf("subtheme rows = %d", len(r.Subthemes))
	}
	if r.Subthemes[0].Total != 2 || r.Subthemes[0].Solved != 1 {
		t.Errorf("s1 = %+v", r.Subthemes[0])
	}
	if r.Subthemes[1].Total != 1 || r.Subthemes[1].Solved != 1 {
		t.Errorf("s2 = %+v, draft exercise should be invisible", r.Subthemes[1])
	}
	if r.Themes[0].Total != 3 || r.Themes[0].Solved != 2 {
		t.Errorf("theme = %+v", r.Themes[0])
	}
	if r.Units[0].Total != 3 || r.Units[0].Solved != 2 {
		t.Errorf("unit = %+v", r.Units[0])
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	units, themes, subthemes, exercises := fixture()
	r := Compute(units, themes, subthemes, exercises, nil)
	if r.Units[0].Solved != 0 || r.Units[0].Total != 3 {
		t.Errorf("unit = %+v", r.Units[0])
	}
}

func TestOrderForStudent(t *testing.T) {
	exercises := []exercise.Exercise{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}, {ID: "e4"}}
	solved := map[string]bool{"e1": true, "e3": true}

	got := OrderForStudent(exercises, solved)
	wantOrder := []string{"e2", "e4", "e1", "e3"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s (full: %v)", i, got[i].ID, want, ids(got))
		}
	}
	// input untouched
	if exercises[0].ID != "e1" {
		t.Error("input slice was reordered")
	}
}

func ids(exs []exercise.Exercise) []string {
	out := make([]string, len(exs))
	for i, e := range exs {
		out[i] = e.ID
	}
	return out
}

func TestComputeStats(t *testing.T) {
	attempts := []practice.Attempt{
		{IsCorrect: true},
		{IsCorrect: true},
		{IsCorrect: false},
	}
	s := ComputeStats(attempts)
	if s.TotalAttempts != 3 || s.CorrectAttempts != 2 {
		t.Errorf("stats = %+v", s)
	}
	if s.Accuracy != 67 {
		t.Errorf("accuracy = %d, want 67", s.Accuracy)
	}

	if z := ComputeStats(nil); z.Accuracy != 0 || z.TotalAttempts != 0 {
		t.Errorf("empty stats = %+v", z)
	}
}
