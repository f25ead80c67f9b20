package exercise

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("exercise not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const exerciseCols = `id, subtheme_id, title, type, difficulty, prompt_md, solution_md,
	prompt_json, solution_json, choices_json, hints_json, tags_json,
	status, created_by, created_at, updated_at`

func scanExercise(row interface{ Scan(...any) error }) (Exercise, error) {
	var e Exercise
	var promptJSON, solutionJSON, choicesJSON, hintsJSON, tagsJSON string
	var createdBy sql.NullString
	err := row.Scan(&e.ID, &e.SubthemeID, &e.Title, &e.Type, &e.Difficulty,
		&e.PromptMD, &e.SolutionMD,
		&promptJSON, &solutionJSON, &choicesJSON, &hintsJSON, &tagsJSON,
		&e.Status, &createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Exercise{}, err
	}
	e.Prompt = json.RawMessage(promptJSON)
	e.Solution = json.RawMessage(solutionJSON)
	e.Choices = json.RawMessage(choicesJSON)
	e.Hints = json.RawMessage(hintsJSON)
	e.Tags = json.RawMessage(tagsJSON)
	e.CreatedBy = createdBy.String
	return e, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Exercise, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+exerciseCols+` FROM exercises WHERE id=$1`, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	return e, err
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Exercise, error) {
	q := `SELECT ` + exerciseCols + ` FROM exercises`
	var args []any
	switch {
	case opts.SubthemeID != "" && opts.PublishedOnly:
		q += ` WHERE subtheme_id=$1 AND status='published'`
		args = append(args, opts.SubthemeID)
	case opts.SubthemeID != "":
		q += ` WHERE subtheme_id=$1`
		args = append(args, opts.SubthemeID)
	case opts.PublishedOnly:
		q += ` WHERE status='published'`
	}
	q += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func orEmptyArray(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "[]"
	}
	return string(raw)
}

func (s *SQLStore) Upsert(ctx context.Context, e Exercise) (Exercise, error) {
	now := time.Now().Unix()
	e.UpdatedAt = now
	if e.ID == "" {
		e.ID = uuid.NewString()
		e.CreatedAt = now
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO exercises (`+exerciseCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			e.ID, e.SubthemeID, e.Title, e.Type, e.Difficulty, e.PromptMD, e.SolutionMD,
			string(e.Prompt), string(e.Solution),
			orEmptyArray(e.Choices), orEmptyArray(e.Hints), orEmptyArray(e.Tags),
			e.Status, nullable(e.CreatedBy), e.CreatedAt, e.UpdatedAt)
		return e, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE exercises SET subtheme_id=$1, title=$2, type=$3, difficulty=$4,
			prompt_md=$5, solution_md=$6, prompt_json=$7, solution_json=$8,
			choices_json=$9, hints_json=$10, tags_json=$11, status=$12, updated_at=$13
		WHERE id=$14`,
		e.SubthemeID, e.Title, e.Type, e.Difficulty, e.PromptMD, e.SolutionMD,
		string(e.Prompt), string(e.Solution),
		orEmptyArray(e.Choices), orEmptyArray(e.Hints), orEmptyArray(e.Tags),
		e.Status, e.UpdatedAt, e.ID)
	if err != nil {
		return Exercise{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Exercise{}, ErrNotFound
	}
	return e, nil
}

func (s *SQLStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE exercises SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id=$1`, id)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
