package progress

import (
	"math"
	"sort"

	"github.com/openlinalg/practice-server/internal/content"
	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/practice"
)

// Progress is a pure function of (hierarchy, published exercises, attempt
// history); nothing here touches storage.

type LevelProgress struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Total  int    `json:"total"`
	Solved int    `json:"solved"`
}

type Report struct {
	Units     []LevelProgress `json:"units"`
	Themes    []LevelProgress `json:"themes"`
	Subthemes []LevelProgress `json:"subthemes"`
}

// SolvedSet is the set of exercise ids ever answered correctly. A later
// incorrect attempt does not un-solve an exercise.
func SolvedSet(attempts []practice.Attempt) map[string]bool {
	solved := make(map[string]bool)
	for _, a := range attempts {
		if a.IsCorrect {
			solved[a.ExerciseID] = true
		}
	}
	return solved
}

// Compute rolls published-exercise totals and distinct solved counts up the
// hierarchy. Draft and archived exercises are invisible to progress.
func Compute(
	units []content.Unit,
	themes []content.Theme,
	subthemes []content.Subtheme,
	exercises []exercise.Exercise,
	attempts []practice.Attempt,
) Report {
	solved := SolvedSet(attempts)

	themeBySubtheme := make(map[string]string, len(subthemes))
	for _, st := range subthemes {
		themeBySubtheme[st.ID] = st.ThemeID
	}
	unitByTheme := make(map[string]string, len(themes))
	for _, t := range themes {
		unitByTheme[t.ID] = t.UnitID
	}

	type counts struct{ total, solved int }
	subCounts := map[string]*counts{}
	themeCounts := map[string]*counts{}
	unitCounts := map[string]*counts{}
	bump := func(m map[string]*counts, id string, isSolved bool) {
		if id == "" {
			return
		}
		c := m[id]
		if c == nil {
			c = &counts{}
			m[id] = c
		}
		c.total++
		if isSolved {
			c.solved++
		}
	}

	for _, ex := range exercises {
		if ex.Status != exercise.StatusPublished {
			continue
		}
		isSolved := solved[ex.ID]
		bump(subCounts, ex.SubthemeID, isSolved)
		themeID := themeBySubtheme[ex.SubthemeID]
		bump(themeCounts, themeID, isSolved)
		bump(unitCounts, unitByTheme[themeID], isSolved)
	}

	report := Report{}
	for _, u := range units {
		lp := LevelProgress{ID: u.ID, Slug: u.Slug, Title: u.Title}
		if c := unitCounts[u.ID]; c != nil {
			lp.Total, lp.Solved = c.total, c.solved
		}
		report.Units = append(report.Units, lp)
	}
	for _, t := range themes {
		lp := LevelProgress{ID: t.ID, Slug: t.Slug, Title: t.Title}
		if c := themeCounts[t.ID]; c != nil {
			lp.Total, lp.Solved = c.total, c.solved
		}
		report.Themes = append(report.Themes, lp)
	}
	for _, st := range subthemes {
		lp := LevelProgress{ID: st.ID, Slug: st.Slug, Title: st.Title}
		if c := subCounts[st.ID]; c != nil {
			lp.Total, lp.Solved = c.total, c.solved
		}
		report.Subthemes = append(report.Subthemes, lp)
	}
	return report
}

// OrderForStudent stably partitions a listing so unsolved exercises come
// first; remaining work is what the student sees on top.
func OrderForStudent(exercises []exercise.Exercise, solved map[string]bool) []exercise.Exercise {
	out := append([]exercise.Exercise(nil), exercises...)
	sort.SliceStable(out, func(i, j int) bool {
		return !solved[out[i].ID] && solved[out[j].ID]
	})
	return out
}

type Stats struct {
	TotalAttempts   int `json:"total_attempts"`
	CorrectAttempts int `json:"correct_attempts"`
	Accuracy        int `json:"accuracy"` // rounded percent
}

func ComputeStats(attempts []practice.Attempt) Stats {
	s := Stats{TotalAttempts: len(attempts)}
	for _, a := range attempts {
		if a.IsCorrect {
			s.CorrectAttempts++
		}
	}
	if s.TotalAttempts > 0 {
		s.Accuracy = int(math.Round(float64(s.CorrectAttempts) / float64(s.TotalAttempts) * 100))
	}
	return s
}
