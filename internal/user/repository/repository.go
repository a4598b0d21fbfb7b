package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hackerclone/hackerclone/internal/common/db"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	"github.com/hackerclone/hackerclone/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

var (
	ErrUserNotFound      = commonerrors.ErrNotFound
	ErrDuplicateUsername = commonerrors.ErrDuplicateUsername
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, username, email, passwordHash string) (domain.User, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3)
		 RETURNING id`,
		username,
		email,
		passwordHash,
	)

	var id int64
	err := row.Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err, "users_username_key") {
			db.MeasureQueryDuration("create_user", "users", start)
			return domain.User{}, ErrDuplicateUsername.WithCause(err)
		}
		return domain.User{}, db.HandleQueryError(err, "create_user", "users", start)
	}
	db.MeasureQueryDuration("create_user", "users", start)

	return domain.User{
		ID:           domain.ID(id),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password FROM users WHERE username = $1`,
		username,
	)
	return scanUser(row, "find_user_by_username")
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password FROM users WHERE id = $1`,
		int64(id),
	)
	return scanUser(row, "find_user_by_id")
}

func scanUser(row pgx.Row, operation string) (domain.User, error) {
	start := time.Now()

	var (
		id   int64
		user domain.User
	)
	err := row.Scan(&id, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.MeasureQueryDuration(operation, "users", start)
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, db.HandleQueryError(err, operation, "users", start)
	}
	db.MeasureQueryDuration(operation, "users", start)

	user.ID = domain.ID(id)
	return user, nil
}
