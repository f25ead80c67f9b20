package content

// Unit is the top-level ordering container of the hierarchy.
type Unit struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type Theme struct {
	ID        string `json:"id"`
	UnitID    string `json:"unit_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type Subtheme struct {
	ID        string `json:"id"`
	ThemeID   string `json:"theme_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Inputs mirror the admin structure forms. An empty slug is derived from the
// title; an empty ID means create.

type UnitInput struct {
	ID       string `json:"id" validate:"omitempty,uuid4"`
	Slug     string `json:"slug" validate:"omitempty,min=2,max=80,slug"`
	Title    string `json:"title" validate:"required,min=2,max=120"`
	Position int    `json:"position" validate:"gte=1"`
}

type ThemeInput struct {
	ID       string `json:"id" validate:"omitempty,uuid4"`
	UnitID   string `json:"unit_id" validate:"required,uuid4"`
	Slug     string `json:"slug" validate:"omitempty,min=2,max=80,slug"`
	Title    string `json:"title" validate:"required,min=2,max=120"`
	Position int    `json:"position" validate:"gte=1"`
}

type SubthemeInput struct {
	ID       string `json:"id" validate:"omitempty,uuid4"`
	ThemeID  string `json:"theme_id" validate:"required,uuid4"`
	Slug     string `json:"slug" validate:"omitempty,min=2,max=80,slug"`
	Title    string `json:"title" validate:"required,min=2,max=120"`
	Position int    `json:"position" validate:"gte=1"`
}
