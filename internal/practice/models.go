package practice

import "encoding/json"

// Attempt is one student submission against one exercise. Rows are
// append-only; there is no update or delete path.
type Attempt struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ExerciseID string          `json:"exercise_id"`
	IsCorrect  bool            `json:"is_correct"`
	Answer     json.RawMessage `json:"answer"`
	CreatedAt  int64           `json:"created_at"`
}

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}
