package practice

import "context"

type Store interface {
	// EnsureProfile inserts a profile row if none exists (ignore-duplicate
	// semantics); it satisfies the attempts foreign key.
	EnsureProfile(ctx context.Context, id, username string) error
	GetProfile(ctx context.Context, id string) (Profile, error)

	AppendAttempt(ctx context.Context, a Attempt) (Attempt, error)
	ListAttempts(ctx context.Context, userID string) ([]Attempt, error)
}
