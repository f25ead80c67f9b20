package exercise

import "context"

type ListOpts struct {
	SubthemeID    string
	PublishedOnly bool
}

// Store is the exercise repository. Listings are ordered by creation time.
type Store interface {
	Get(ctx context.Context, id string) (Exercise, error)
	List(ctx context.Context, opts ListOpts) ([]Exercise, error)
	Upsert(ctx context.Context, e Exercise) (Exercise, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
