package user

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	"fintrack/internal/core/domain/user"
	"fintrack/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

const userColumns = `email, name, password_hash, created_at, password_changed_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, input user.SetPasswordInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET password_hash = $2, password_changed_at = $3
		WHERE email = $1
		RETURNING `+userColumns,
		string(input.Email),
		string(input.PasswordHash),
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		email             string
		passwordHash      string
		passwordChangedAt *time.Time
	)
	err = row.Scan(&email, &u.Name, &passwordHash, &u.CreatedAt, &passwordChangedAt)
	if err != nil {
		return u, err
	}
	u.Email = c.Email(email)
	u.PasswordHash = user.PasswordHash(passwordHash)
	if passwordChangedAt != nil {
		u.PasswordChangedAt = c.NewOptional(*passwordChangedAt, true)
	}
	return u, nil
}
