package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, picture, provider, created_at, updated_at, last_login_at`

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, email, name, picture, provider, created_at, updated_at, last_login_at)
VALUES ($1, $2, $3, $4, $5, now(), now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = COALESCE(EXCLUDED.name, users.name),
  picture = COALESCE(EXCLUDED.picture, users.picture),
  provider = EXCLUDED.provider,
  updated_at = now(),
  last_login_at = now()
RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.Name),
		nullableString(user.Picture),
		user.Provider,
	))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var name sql.NullString
	var picture sql.NullString
	var lastLogin sql.NullTime
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&name,
		&picture,
		&user.Provider,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLogin,
	); err != nil {
		return User{}, err
	}
	if name.Valid {
		user.Name = name.String
	}
	if picture.Valid {
		user.Picture = picture.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
