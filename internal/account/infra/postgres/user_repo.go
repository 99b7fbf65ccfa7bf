package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dimasqi/storefront/internal/account/app"
	"github.com/dimasqi/storefront/internal/account/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	var userUUID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		u.Email, u.Username, u.PasswordHash,
	).Scan(&userUUID, &u.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return domain.User{}, app.ErrEmailTaken
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	u.ID = userUUID.String()
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, password_hash, created_at
		FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, password_hash, created_at
		FROM users WHERE id = $1`,
		userUUID,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		userUUID uuid.UUID
	)
	err := row.Scan(&userUUID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.ID = userUUID.String()
	return u, nil
}
