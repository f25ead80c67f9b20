package exercise

import "encoding/json"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Exercise is one graded question. Prompt and Solution hold the derived,
// type-specific JSON documents; the *_md fields keep the author-facing
// markdown they were built from.
type Exercise struct {
	ID         string          `json:"id"`
	SubthemeID string          `json:"subtheme_id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Difficulty int             `json:"difficulty"`
	PromptMD   string          `json:"prompt_md"`
	SolutionMD string          `json:"solution_md"`
	Prompt     json.RawMessage `json:"prompt"`
	Solution   json.RawMessage `json:"solution"`
	Choices    json.RawMessage `json:"choices"`
	Hints      json.RawMessage `json:"hints"`
	Tags       json.RawMessage `json:"tags"`
	Status     string          `json:"status"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  int64           `json:"created_at"`
	UpdatedAt  int64           `json:"updated_at"`
}

// EditorInput is the authoring form payload. Choices carries the
// type-specific config consumed by the payload builder.
type EditorInput struct {
	ID         string          `json:"id" validate:"omitempty,uuid4"`
	SubthemeID string          `json:"subtheme_id" validate:"required,uuid4"`
	Title      string          `json:"title" validate:"required,min=3,max=160"`
	Type       string          `json:"type" validate:"required,min=2,max=60"`
	Difficulty int             `json:"difficulty" validate:"gte=1,lte=5"`
	Status     string          `json:"status" validate:"oneof=draft published archived"`
	PromptMD   string          `json:"prompt_md" validate:"required,min=3"`
	SolutionMD string          `json:"solution_md" validate:"required,min=3"`
	Choices    json.RawMessage `json:"choices"`
	Hints      json.RawMessage `json:"hints"`
	Tags       json.RawMessage `json:"tags"`
}
