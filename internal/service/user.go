package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"profast/internal/model"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Upsert registers a user on first sign-in. Subsequent sign-ins only touch
// last_log_in. The inserted flag reports which path was taken.
func (s *UserService) Upsert(ctx context.Context, email, name string, lastLogIn time.Time) (user *model.User, inserted bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at FROM users WHERE email = $1`, email)

	var existing model.User
	err = row.Scan(&existing.ID, &existing.Email, &existing.Role, &existing.CreatedAt)
	switch {
	case err == nil:
		return s.touch(ctx, &existing, lastLogIn)
	case errors.Is(err, sql.ErrNoRows):
		// fall through to insert
	default:
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	// ON CONFLICT DO NOTHING so a raced concurrent insert degrades to the
	// touch path instead of a duplicate-key failure.
	row = s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, last_log_in)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, role, created_at
	`, email, name, lastLogIn)

	var created model.User
	err = row.Scan(&created.ID, &created.Email, &created.Role, &created.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s.touchByEmail(ctx, email, lastLogIn)
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}

	created.Name = name
	created.LastLogIn = lastLogIn
	return &created, true, nil
}

func (s *UserService) touch(ctx context.Context, u *model.User, lastLogIn time.Time) (*model.User, bool, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_log_in = $1 WHERE email = $2`, lastLogIn, u.Email)
	if err != nil {
		return nil, false, fmt.Errorf("update last_log_in: %w", err)
	}
	u.LastLogIn = lastLogIn
	return u, false, nil
}

func (s *UserService) touchByEmail(ctx context.Context, email string, lastLogIn time.Time) (*model.User, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users SET last_log_in = $1 WHERE email = $2
		RETURNING id, email, role, created_at
	`, lastLogIn, email)

	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		return nil, false, fmt.Errorf("touch user: %w", err)
	}
	u.LastLogIn = lastLogIn
	return &u, false, nil
}
