package practice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) EnsureProfile(ctx context.Context, id, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, username, role, created_at)
		VALUES ($1,$2,'student',$3)
		ON CONFLICT (id) DO NOTHING`,
		id, username, time.Now().Unix())
	return err
}

func (s *SQLStore) GetProfile(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, role, created_at FROM profiles WHERE id=$1`, id)
	var p Profile
	if err := row.Scan(&p.ID, &p.Username, &p.Role, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *SQLStore) AppendAttempt(ctx context.Context, a Attempt) (Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	answer := a.Answer
	if len(answer) == 0 {
		answer = json.RawMessage(`{}`)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, user_id, exercise_id, is_correct, answer_json, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.UserID, a.ExerciseID, a.IsCorrect, string(answer), a.CreatedAt)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) ListAttempts(ctx context.Context, userID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, exercise_id, is_correct, answer_json, created_at
		FROM attempts WHERE user_id=$1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var answer string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ExerciseID, &a.IsCorrect, &answer, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Answer = json.RawMessage(answer)
		out = append(out, a)
	}
	return out, rows.Err()
}
