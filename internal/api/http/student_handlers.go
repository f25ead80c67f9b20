package http

import (
	"encoding/json"
	"errors"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	authmw "github.com/openlinalg/practice-server/internal/auth/middleware"
	"github.com/openlinalg/practice-server/internal/content"
	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/grading"
	"github.com/openlinalg/practice-server/internal/practice"
	"github.com/openlinalg/practice-server/internal/progress"
)

func ListUnitsHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		units, err := store.ListUnits(r.Context())
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		if units == nil {
			units = []content.Unit{}
		}
		writeJSON(w, nethttp.StatusOK, units)
	}
}

func ListThemesHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		themes, err := store.ListThemes(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		if themes == nil {
			themes = []content.Theme{}
		}
		writeJSON(w, nethttp.StatusOK, themes)
	}
}

func ListSubthemesHandler(store content.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		subthemes, err := store.ListSubthemes(r.Context(), chi.URLParam(r, "themeID"))
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		if subthemes == nil {
			subthemes = []content.Subtheme{}
		}
		writeJSON(w, nethttp.StatusOK, subthemes)
	}
}

// studentExercise is the practice view of a row. Solutions and the raw
// authoring config stay server-side.
type studentExercise struct {
	ID         string          `json:"id"`
	SubthemeID string          `json:"subtheme_id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Difficulty int             `json:"difficulty"`
	PromptMD   string          `json:"prompt_md"`
	Prompt     json.RawMessage `json:"prompt"`
	Hints      json.RawMessage `json:"hints"`
	Tags       json.RawMessage `json:"tags"`
	Solved     bool            `json:"solved"`
}

func toStudentView(ex exercise.Exercise, solved bool) studentExercise {
	return studentExercise{
		ID:         ex.ID,
		SubthemeID: ex.SubthemeID,
		Title:      ex.Title,
		Type:       ex.Type,
		Difficulty: ex.Difficulty,
		PromptMD:   ex.PromptMD,
		Prompt:     ex.Prompt,
		Hints:      ex.Hints,
		Tags:       ex.Tags,
		Solved:     solved,
	}
}

// ListSubthemeExercisesHandler lists published exercises of a subtheme with
// the caller's solved flags, unsolved first.
func ListSubthemeExercisesHandler(exStore exercise.Store, attempts practice.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())
		subthemeID := chi.URLParam(r, "subthemeID")

		var (
			list    []exercise.Exercise
			history []practice.Attempt
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			list, err = exStore.List(ctx, exercise.ListOpts{SubthemeID: subthemeID, PublishedOnly: true})
			return err
		})
		g.Go(func() error {
			var err error
			history, err = attempts.ListAttempts(ctx, uid)
			return err
		})
		if err := g.Wait(); err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}

		solved := progress.SolvedSet(history)
		out := make([]studentExercise, 0, len(list))
		for _, ex := range progress.OrderForStudent(list, solved) {
			out = append(out, toStudentView(ex, solved[ex.ID]))
		}
		writeJSON(w, nethttp.StatusOK, out)
	}
}

func GetStudentExerciseHandler(exStore exercise.Store, attempts practice.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())
		ex, err := exStore.Get(r.Context(), chi.URLParam(r, "exerciseID"))
		if err != nil || ex.Status != exercise.StatusPublished {
			if err != nil && !errors.Is(err, exercise.ErrNotFound) {
				fail(w, nethttp.StatusInternalServerError, "db error")
				return
			}
			fail(w, nethttp.StatusNotFound, "exercise not found")
			return
		}
		history, err := attempts.ListAttempts(r.Context(), uid)
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		writeJSON(w, nethttp.StatusOK, toStudentView(ex, progress.SolvedSet(history)[ex.ID]))
	}
}

// SubmitAttemptHandler grades a response and records the attempt. Grading
// failures are client errors; a failed save still returns the verdict.
func SubmitAttemptHandler(svc *practice.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())
		var resp grading.Response
		if !decodeBody(w, r, &resp) {
			return
		}
		result, err := svc.Submit(r.Context(), uid, chi.URLParam(r, "exerciseID"), resp)
		if err != nil {
			if errors.Is(err, exercise.ErrNotFound) {
				fail(w, nethttp.StatusNotFound, "exercise not found")
				return
			}
			fail(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, nethttp.StatusOK, result)
	}
}

func ListMyAttemptsHandler(attempts practice.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())
		history, err := attempts.ListAttempts(r.Context(), uid)
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		if history == nil {
			history = []practice.Attempt{}
		}
		writeJSON(w, nethttp.StatusOK, history)
	}
}

// MyProfileHandler fans out the profile row and attempt history, then folds
// the history into accuracy stats. A user who has never saved an attempt
// gets a synthesized profile.
func MyProfileHandler(attempts practice.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())

		var (
			profile practice.Profile
			history []practice.Attempt
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			p, err := attempts.GetProfile(ctx, uid)
			if errors.Is(err, practice.ErrProfileNotFound) {
				p = practice.Profile{ID: uid, Username: practice.FallbackUsername(uid), Role: "student"}
				err = nil
			}
			profile = p
			return err
		})
		g.Go(func() error {
			var err error
			history, err = attempts.ListAttempts(ctx, uid)
			return err
		})
		if err := g.Wait(); err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}

		writeJSON(w, nethttp.StatusOK, map[string]any{
			"profile": profile,
			"stats":   progress.ComputeStats(history),
		})
	}
}

// MyProgressHandler fans out the full hierarchy, the published exercises,
// and the caller's history, then rolls them up in memory.
func MyProgressHandler(catalog content.Store, exStore exercise.Store, attempts practice.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		uid := authmw.SubjectFromContext(r.Context())

		var (
			units     []content.Unit
			themes    []content.Theme
			subthemes []content.Subtheme
			published []exercise.Exercise
			history   []practice.Attempt
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			units, err = catalog.ListUnits(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			themes, err = catalog.ListThemes(ctx, "")
			return err
		})
		g.Go(func() error {
			var err error
			subthemes, err = catalog.ListSubthemes(ctx, "")
			return err
		})
		g.Go(func() error {
			var err error
			published, err = exStore.List(ctx, exercise.ListOpts{PublishedOnly: true})
			return err
		})
		g.Go(func() error {
			var err error
			history, err = attempts.ListAttempts(ctx, uid)
			return err
		})
		if err := g.Wait(); err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}

		writeJSON(w, nethttp.StatusOK, progress.Compute(units, themes, subthemes, published, history))
	}
}
