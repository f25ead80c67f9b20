package practice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/grading"
)

// Service runs the submit flow: grade locally, then record the attempt
// best-effort. A persistence failure never changes the verdict; it is
// reported as a secondary message.
type Service struct {
	exercises exercise.Store
	attempts  Store
	grader    grading.Grader
}

func NewService(exercises exercise.Store, attempts Store, grader grading.Grader) *Service {
	return &Service{exercises: exercises, attempts: attempts, grader: grader}
}

type SubmitResult struct {
	Correct     bool   `json:"correct"`
	Feedback    string `json:"feedback"` // "Correct" | "Incorrect"
	Saved       bool   `json:"saved"`
	SaveMessage string `json:"save_message"`
}

func (s *Service) Submit(ctx context.Context, userID, exerciseID string, resp grading.Response) (SubmitResult, error) {
	ex, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return SubmitResult{}, err
	}
	if ex.Status != exercise.StatusPublished {
		return SubmitResult{}, exercise.ErrNotFound
	}

	prompt, err := exercise.DecodePrompt(ex.Prompt)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("decode prompt: %w", err)
	}
	sol, err := exercise.DecodeSolution(prompt.Kind(), ex.Solution)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("decode solution: %w", err)
	}

	correct, err := s.grader.Grade(ctx, prompt, sol, resp)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Correct: correct}
	if correct {
		result.Feedback = "Correct"
	} else {
		result.Feedback = "Incorrect"
	}

	result.Saved, result.SaveMessage = s.saveAttempt(ctx, userID, exerciseID, correct, resp)
	return result, nil
}

func (s *Service) saveAttempt(ctx context.Context, userID, exerciseID string, correct bool, resp grading.Response) (bool, string) {
	username := FallbackUsername(userID)
	if err := s.attempts.EnsureProfile(ctx, userID, username); err != nil {
		return false, "Attempt not saved: " + err.Error()
	}

	answer, err := json.Marshal(resp)
	if err != nil {
		answer = []byte(`{}`)
	}
	_, err = s.attempts.AppendAttempt(ctx, Attempt{
		UserID:     userID,
		ExerciseID: exerciseID,
		IsCorrect:  correct,
		Answer:     answer,
	})
	if err != nil {
		return false, "Attempt not saved: " + err.Error()
	}
	return true, "Attempt saved."
}

// FallbackUsername derives a display name for profiles created implicitly
// on first attempt.
func FallbackUsername(userID string) string {
	if len(userID) > 8 {
		return "user_" + userID[:8]
	}
	return "user_" + userID
}
