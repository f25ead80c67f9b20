package content

import "context"

// Store is the hierarchy repository. Listings are ordered by position.
type Store interface {
	ListUnits(ctx context.Context) ([]Unit, error)
	ListThemes(ctx context.Context, unitID string) ([]Theme, error)
	ListSubthemes(ctx context.Context, themeID string) ([]Subtheme, error)

	UpsertUnit(ctx context.Context, in UnitInput) (Unit, error)
	DeleteUnit(ctx context.Context, id string) error
	UpsertTheme(ctx context.Context, in ThemeInput) (Theme, error)
	DeleteTheme(ctx context.Context, id string) error
	UpsertSubtheme(ctx context.Context, in SubthemeInput) (Subtheme, error)
	DeleteSubtheme(ctx context.Context, id string) error
}
