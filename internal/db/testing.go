package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Repository tests run from internal/db/<package>.
const defaultMigrationsPath = "../migrations"

func applyMigrations(connString string) {
	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = defaultMigrationsPath
	}
	migrationsPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		panic(fmt.Sprintf("Could not resolve migrations path %v.", err))
	}
	m, err := migrate.New("file://"+migrationsPath, connString)
	if err != nil {
		panic(fmt.Sprintf("Could not connect to DB for applying migrations %v.", err))
	}
	err = m.Up()
	if !errors.Is(err, migrate.ErrNoChange) && err != nil {
		panic(fmt.Sprintf("Could not apply DB migrations %v.", err))
	}
}

// CreateTestPool skips the test if TEST_POSTGRESQL_URL is not set.
func CreateTestPool(t testing.TB) *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	applyMigrations(connString)

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		panic("Could not connect to the database.")
	}

	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\", password_reset_token")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
