package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, title, position, created_at FROM units ORDER BY position, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Slug, &u.Title, &u.Position, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListThemes(ctx context.Context, unitID string) ([]Theme, error) {
	q := `SELECT id, unit_id, slug, title, position, created_at FROM themes ORDER BY position, title`
	args := []any{}
	if unitID != "" {
		q = `SELECT id, unit_id, slug, title, position, created_at FROM themes WHERE unit_id=$1 ORDER BY position, title`
		args = append(args, unitID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Theme
	for rows.Next() {
		var t Theme
		if err := rows.Scan(&t.ID, &t.UnitID, &t.Slug, &t.Title, &t.Position, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListSubthemes(ctx context.Context, themeID string) ([]Subtheme, error) {
	q := `SELECT id, theme_id, slug, title, position, created_at FROM subthemes ORDER BY position, title`
	args := []any{}
	if themeID != "" {
		q = `SELECT id, theme_id, slug, title, position, created_at FROM subthemes WHERE theme_id=$1 ORDER BY position, title`
		args = append(args, themeID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subtheme
	for rows.Next() {
		var st Subtheme
		if err := rows.Scan(&st.ID, &st.ThemeID, &st.Slug, &st.Title, &st.Position, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) slugTaken(table string, excludeID string) SlugTakenFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		var cnt int
		var err error
		if excludeID == "" {
			err = s.db.QueryRowContext(ctx,
				`SELECT COUNT(1) FROM `+table+` WHERE slug=$1`, candidate).Scan(&cnt)
		} else {
			err = s.db.QueryRowContext(ctx,
				`SELECT COUNT(1) FROM `+table+` WHERE slug=$1 AND id<>$2`, candidate, excludeID).Scan(&cnt)
		}
		return cnt > 0, err
	}
}

func (s *SQLStore) resolveSlug(ctx context.Context, table, explicit, title, excludeID string) (string, error) {
	base := explicit
	if base == "" {
		base = Slugify(title)
	}
	return UniqueSlug(ctx, base, s.slugTaken(table, excludeID))
}

func (s *SQLStore) UpsertUnit(ctx context.Context, in UnitInput) (Unit, error) {
	slug, err := s.resolveSlug(ctx, "units", in.Slug, in.Title, in.ID)
	if err != nil {
		return Unit{}, err
	}
	u := Unit{ID: in.ID, Slug: slug, Title: in.Title, Position: in.Position}
	if in.ID == "" {
		u.ID = uuid.NewString()
		u.CreatedAt = time.Now().Unix()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO units (id, slug, title, position, created_at) VALUES ($1,$2,$3,$4,$5)`,
			u.ID, u.Slug, u.Title, u.Position, u.CreatedAt)
		return u, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE units SET slug=$1, title=$2, position=$3 WHERE id=$4`,
		u.Slug, u.Title, u.Position, u.ID)
	if err != nil {
		return Unit{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Unit{}, errors.New("unit not found")
	}
	return u, nil
}

func (s *SQLStore) DeleteUnit(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (s *SQLStore) UpsertTheme(ctx context.Context, in ThemeInput) (Theme, error) {
	slug, err := s.resolveSlug(ctx, "themes", in.Slug, in.Title, in.ID)
	if err != nil {
		return Theme{}, err
	}
	t := Theme{ID: in.ID, UnitID: in.UnitID, Slug: slug, Title: in.Title, Position: in.Position}
	if in.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = time.Now().Unix()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO themes (id, unit_id, slug, title, position, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
			t.ID, t.UnitID, t.Slug, t.Title, t.Position, t.CreatedAt)
		return t, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE themes SET unit_id=$1, slug=$2, title=$3, position=$4 WHERE id=$5`,
		t.UnitID, t.Slug, t.Title, t.Position, t.ID)
	if err != nil {
		return Theme{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Theme{}, errors.New("theme not found")
	}
	return t, nil
}

func (s *SQLStore) DeleteTheme(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM themes WHERE id=$1`, id)
	return err
}

func (s *SQLStore) UpsertSubtheme(ctx context.Context, in SubthemeInput) (Subtheme, error) {
	slug, err := s.resolveSlug(ctx, "subthemes", in.Slug, in.Title, in.ID)
	if err != nil {
		return Subtheme{}, err
	}
	st := Subtheme{ID: in.ID, ThemeID: in.ThemeID, Slug: slug, Title: in.Title, Position: in.Position}
	if in.ID == "" {
		st.ID = uuid.NewString()
		st.CreatedAt = time.Now().Unix()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO subthemes (id, theme_id, slug, title, position, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
			st.ID, st.ThemeID, st.Slug, st.Title, st.Position, st.CreatedAt)
		return st, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE subthemes SET theme_id=$1, slug=$2, title=$3, position=$4 WHERE id=$5`,
		st.ThemeID, st.Slug, st.Title, st.Position, st.ID)
	if err != nil {
		return Subtheme{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Subtheme{}, errors.New("subtheme not found")
	}
	return st, nil
}

func (s *SQLStore) DeleteSubtheme(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subthemes WHERE id=$1`, id)
	return err
}
