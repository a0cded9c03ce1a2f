package passwordreset

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const TOKEN_CONSTRAINT_NAME = "password_reset_token_pkey"

type PgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Create(ctx context.Context, token passwordreset.ResetToken) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO password_reset_token (token, email, expires_at) VALUES ($1, $2, $3)`,
		string(token.Token),
		string(token.Email),
		token.ExpiresAt,
	)

	var errTokenUniqueConstraint *pgconn.PgError
	if errors.As(err, &errTokenUniqueConstraint) {
		if errTokenUniqueConstraint.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			errTokenUniqueConstraint.ConstraintName == TOKEN_CONSTRAINT_NAME {
			return passwordreset.ErrTokenAlreadyExists
		}
	}
	return err
}

func (r *PgxRepository) GetByToken(ctx context.Context, token passwordreset.Token) (passwordreset.ResetToken, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT token, email, expires_at FROM password_reset_token WHERE token = $1`,
		string(token),
	)
	return scanToken(row)
}

// Take relies on DELETE ... RETURNING, only one of concurrent
// transactions gets the row back.
func (r *PgxRepository) Take(ctx context.Context, token passwordreset.Token) (passwordreset.ResetToken, error) {
	row := r.db.QueryRow(
		ctx,
		`DELETE FROM password_reset_token WHERE token = $1 RETURNING token, email, expires_at`,
		string(token),
	)
	return scanToken(row)
}

func (r *PgxRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_token WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanToken(row pgx.Row) (rt passwordreset.ResetToken, err error) {
	var token, email string
	err = row.Scan(&token, &email, &rt.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rt, passwordreset.ErrTokenDoesNotExist
	}
	if err != nil {
		return rt, err
	}
	rt.Token = passwordreset.Token(token)
	rt.Email = c.Email(email)
	return rt, nil
}
