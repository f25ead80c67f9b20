package http

import (
	"errors"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/openlinalg/practice-server/internal/auth/middleware"
	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/validate"
)

// buildExercise turns the validated editor form into a storable row. The
// prompt and solution documents are always rebuilt from the form; stale
// derived payloads never survive an edit.
func buildExercise(in exercise.EditorInput, createdBy string) (exercise.Exercise, error) {
	prompt, sol := exercise.BuildPayload(in)
	promptJSON, err := exercise.EncodePrompt(prompt)
	if err != nil {
		return exercise.Exercise{}, err
	}
	solJSON, err := exercise.EncodeSolution(sol)
	if err != nil {
		return exercise.Exercise{}, err
	}
	return exercise.Exercise{
		ID:         in.ID,
		SubthemeID: in.SubthemeID,
		Title:      in.Title,
		Type:       in.Type,
		Difficulty: in.Difficulty,
		PromptMD:   in.PromptMD,
		SolutionMD: in.SolutionMD,
		Prompt:     promptJSON,
		Solution:   solJSON,
		Choices:    in.Choices,
		Hints:      in.Hints,
		Tags:       in.Tags,
		Status:     in.Status,
		CreatedBy:  createdBy,
	}, nil
}

func UpsertExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in exercise.EditorInput
		if !decodeBody(w, r, &in) {
			return
		}
		if in.Status == "" {
			in.Status = exercise.StatusDraft
		}
		if in.Difficulty == 0 {
			in.Difficulty = 1
		}
		if err := validate.V.Struct(in); err != nil {
			fail(w, nethttp.StatusBadRequest, validate.FirstError(err))
			return
		}
		ex, err := buildExercise(in, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			fail(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		creating := in.ID == ""
		saved, err := store.Upsert(r.Context(), ex)
		if err != nil {
			if creating {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Create failed"))
			} else {
				fail(w, nethttp.StatusInternalServerError, errMessage(err, "Update failed"))
			}
			return
		}
		if creating {
			ok(w, "Exercise created", saved.ID)
		} else {
			ok(w, "Exercise updated", saved.ID)
		}
	}
}

// AutosaveExerciseHandler is the background-save path of the editor. It
// always writes a draft, whatever status the form carries; publishing is an
// explicit action.
func AutosaveExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in exercise.EditorInput
		if !decodeBody(w, r, &in) {
			return
		}
		in.Status = exercise.StatusDraft
		if in.Difficulty == 0 {
			in.Difficulty = 1
		}
		if err := validate.V.Struct(in); err != nil {
			fail(w, nethttp.StatusBadRequest, validate.FirstError(err))
			return
		}
		ex, err := buildExercise(in, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			fail(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		saved, err := store.Upsert(r.Context(), ex)
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, errMessage(err, "Autosave failed"))
			return
		}
		ok(w, "Draft autosaved", saved.ID)
	}
}

func PublishExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "exerciseID")
		if err := store.SetStatus(r.Context(), id, exercise.StatusPublished); err != nil {
			status := nethttp.StatusInternalServerError
			if errors.Is(err, exercise.ErrNotFound) {
				status = nethttp.StatusNotFound
			}
			fail(w, status, errMessage(err, "Publish failed"))
			return
		}
		ok(w, "Exercise published", id)
	}
}

func ArchiveExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "exerciseID")
		if err := store.SetStatus(r.Context(), id, exercise.StatusArchived); err != nil {
			status := nethttp.StatusInternalServerError
			if errors.Is(err, exercise.ErrNotFound) {
				status = nethttp.StatusNotFound
			}
			fail(w, status, errMessage(err, "Archive failed"))
			return
		}
		ok(w, "Exercise archived", id)
	}
}

func DeleteExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "exerciseID")
		if err := store.Delete(r.Context(), id); err != nil {
			fail(w, nethttp.StatusInternalServerError, errMessage(err, "Delete failed"))
			return
		}
		ok(w, "Exercise deleted", "")
	}
}

// AdminListExercisesHandler returns full rows, drafts and archived included.
func AdminListExercisesHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		opts := exercise.ListOpts{SubthemeID: r.URL.Query().Get("subtheme_id")}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		if list == nil {
			list = []exercise.Exercise{}
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

// AdminGetExerciseHandler loads one row for the editor, any status.
func AdminGetExerciseHandler(store exercise.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := chi.URLParam(r, "exerciseID")
		ex, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, exercise.ErrNotFound) {
				fail(w, nethttp.StatusNotFound, "exercise not found")
				return
			}
			fail(w, nethttp.StatusInternalServerError, "db error")
			return
		}
		writeJSON(w, nethttp.StatusOK, ex)
	}
}
