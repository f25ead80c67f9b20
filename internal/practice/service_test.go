package practice

import (
	"context"
	"errors"
	"testing"

	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/grading"
)

type fakeExercises struct {
	byID map[string]exercise.Exercise
}

func (f *fakeExercises) Get(_ context.Context, id string) (exercise.Exercise, error) {
	ex, ok := f.byID[id]
	if !ok {
		return exercise.Exercise{}, exercise.ErrNotFound
	}
	return ex, nil
}
func (f *fakeExercises) List(context.Context, exercise.ListOpts) ([]exercise.Exercise, error) {
	return nil, nil
}
func (f *fakeExercises) Upsert(_ context.Context, e exercise.Exercise) (exercise.Exercise, error) {
	return e, nil
}
func (f *fakeExercises) SetStatus(context.Context, string, string) error { return nil }
func (f *fakeExercises) Delete(context.Context, string) error            { return nil }

type fakeAttempts struct {
	profiles map[string]Profile
	attempts []Attempt

	failEnsure bool
	failAppend bool
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{profiles: map[string]Profile{}}
}

func (f *fakeAttempts) EnsureProfile(_ context.Context, id, username string) error {
	if f.failEnsure {
		return errors.New("profiles table unavailable")
	}
	if _, ok := f.profiles[id]; !ok {
		f.profiles[id] = Profile{ID: id, Username: username, Role: "student"}
	}
	return nil
}

func (f *fakeAttempts) GetProfile(_ context.Context, id string) (Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeAttempts) AppendAttempt(_ context.Context, a Attempt) (Attempt, error) {
	if f.failAppend {
		return Attempt{}, errors.New("insert failed")
	}
	if a.ID == "" {
		a.ID = "att-1"
	}
	f.attempts = append(f.attempts, a)
	return a, nil
}

func (f *fakeAttempts) ListAttempts(_ context.Context, userID string) ([]Attempt, error) {
	var out []Attempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func vectorExercise(t *testing.T, id, status string) exercise.Exercise {
	t.Helper()
	prompt, err := exercise.EncodePrompt(exercise.VectorPrompt{
		QuestionText: "Read the vector.",
		Grid:         exercise.DefaultGrid(),
		VectorEnd:    [2]float64{3, -2},
	})
	if err != nil {
		t.Fatal(err)
	}
	sol, err := exercise.EncodeSolution(exercise.XYSolution{X: 3, Y: -2})
	if err != nil {
		t.Fatal(err)
	}
	return exercise.Exercise{ID: id, Status: status, Prompt: prompt, Solution: sol}
}

const testUser = "4f2d8c1a-0b3e-4d5f-8a6b-7c8d9e0f1a2b"

func TestSubmitCorrectAndSaved(t *testing.T) {
	exStore := &fakeExercises{byID: map[string]exercise.Exercise{
		"e1": vectorExercise(t, "e1", exercise.StatusPublished),
	}}
	attempts := newFakeAttempts()
	svc := NewService(exStore, attempts, grading.NewDefaultGrader())

	res, err := svc.Submit(context.Background(), testUser, "e1", grading.Response{X: "3", Y: "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.Feedback != "Correct" {
		t.Errorf("result = %+v", res)
	}
	if !res.Saved || res.SaveMessage != "Attempt saved." {
		t.Errorf("save = %v %q", res.Saved, res.SaveMessage)
	}
	if len(attempts.attempts) != 1 || !attempts.attempts[0].IsCorrect {
		t.Errorf("stored attempts = %+v", attempts.attempts)
	}
	p, err := attempts.GetProfile(context.Background(), testUser)
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if p.Username != "user_4f2d8c1a" {
		t.Errorf("username = %q", p.Username)
	}
}

func TestSubmitIncorrectStillRecorded(t *testing.T) {
	exStore := &fakeExercises{byID: map[string]exercise.Exercise{
		"e1": vectorExercise(t, "e1", exercise.StatusPublished),
	}}
	attempts := newFakeAttempts()
	svc := NewService(exStore, attempts, grading.NewDefaultGrader())

	res, err := svc.Submit(context.Background(), testUser, "e1", grading.Response{X: "0", Y: "0"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Correct || res.Feedback != "Incorrect" {
		t.Errorf("result = %+v", res)
	}
	if len(attempts.attempts) != 1 || attempts.attempts[0].IsCorrect {
		t.Errorf("stored attempts = %+v", attempts.attempts)
	}
}

func TestSubmitVerdictSurvivesSaveFailure(t *testing.T) {
	exStore := &fakeExercises{byID: map[string]exercise.Exercise{
		"e1": vectorExercise(t, "e1", exercise.StatusPublished),
	}}
	attempts := newFakeAttempts()
	attempts.failAppend = true
	svc := NewService(exStore, attempts, grading.NewDefaultGrader())

	res, err := svc.Submit(context.Background(), testUser, "e1", grading.Response{X: "3", Y: "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct {
		t.Error("verdict must not depend on persistence")
	}
	if res.Saved || res.SaveMessage != "Attempt not saved: insert failed" {
		t.Errorf("save = %v %q", res.Saved, res.SaveMessage)
	}
}

func TestSubmitProfileFailureReported(t *testing.T) {
	exStore := &fakeExercises{byID: map[string]exercise.Exercise{
		"e1": vectorExercise(t, "e1", exercise.StatusPublished),
	}}
	attempts := newFakeAttempts()
	attempts.failEnsure = true
	svc := NewService(exStore, attempts, grading.NewDefaultGrader())

	res, err := svc.Submit(context.Background(), testUser, "e1", grading.Response{X: "3", Y: "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved || res.SaveMessage != "Attempt not saved: profiles table unavailable" {
		t.Errorf("save = %v %q", res.Saved, res.SaveMessage)
	}
}

func TestSubmitUnpublishedIsNotFound(t *testing.T) {
	exStore := &fakeExercises{byID: map[string]exercise.Exercise{
		"e1": vectorExercise(t, "e1", exercise.StatusDraft),
	}}
	svc := NewService(exStore, newFakeAttempts(), grading.NewDefaultGrader())

	_, err := svc.Submit(context.Background(), testUser, "e1", grading.Response{X: "3", Y: "-2"})
	if !errors.Is(err, exercise.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFallbackUsername(t *testing.T) {
	if got := FallbackUsername(testUser); got != "user_4f2d8c1a" {
		t.Errorf("got %q", got)
	}
	if got := FallbackUsername("abc"); got != "user_abc" {
		t.Errorf("short id: got %q", got)
	}
}
