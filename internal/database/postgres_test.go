package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr   error
	downErr error
}

func (f *fakeMigrator) Up() error   { return f.upErr }
func (f *fakeMigrator) Down() error { return f.downErr }

func restoreSeams() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver source.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		return migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
	}
}

// stubMigrateSeams 把所有 migrate 依賴換成可控版本
func stubMigrateSeams(m migrateInstance, newErr error) {
	sqlOpenDB = func(driverName, dataSourceName string) (*sql.DB, error) {
		return sql.Open("pgx", dataSourceName)
	}
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (source.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, source.Driver, string, dbdriver.Driver) (migrateInstance, error) {
		return m, newErr
	}
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restoreSeams)

	pgxpoolNew = func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, errors.New("bad dsn")
	}
	_, err := NewPgxPool(context.Background(), "bogus")
	require.Error(t, err)

	pgxpoolNew = func(_ context.Context, url string) (*pgxpool.Pool, error) {
		require.Equal(t, "postgres://ok", url)
		return &pgxpool.Pool{}, nil
	}
	db, err := NewPgxPool(context.Background(), "postgres://ok")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestRunMigrations(t *testing.T) {
	t.Cleanup(restoreSeams)

	t.Run("open error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		require.Error(t, RunMigrations("db"))
	})

	t.Run("driver error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) {
			return nil, errors.New("driver")
		}
		require.Error(t, RunMigrations("db"))
	})

	t.Run("source error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		iofsNewFn = func(fs.FS, string) (source.Driver, error) { return nil, errors.New("source") }
		require.Error(t, RunMigrations("db"))
	})

	t.Run("instance error", func(t *testing.T) {
		stubMigrateSeams(nil, errors.New("instance"))
		require.Error(t, RunMigrations("db"))
	})

	t.Run("up error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{upErr: errors.New("up")}, nil)
		require.Error(t, RunMigrations("db"))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{upErr: migrate.ErrNoChange}, nil)
		require.NoError(t, RunMigrations("db"))
	})

	t.Run("success", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		require.NoError(t, RunMigrations("db"))
	})
}

func TestRollbackAll(t *testing.T) {
	t.Cleanup(restoreSeams)

	t.Run("open error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		require.Error(t, RollbackAll("db"))
	})

	t.Run("down error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{downErr: errors.New("down")}, nil)
		require.Error(t, RollbackAll("db"))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{downErr: migrate.ErrNoChange}, nil)
		require.NoError(t, RollbackAll("db"))
	})

	t.Run("success", func(t *testing.T) {
		stubMigrateSeams(&fakeMigrator{}, nil)
		require.NoError(t, RollbackAll("db"))
	})
}

// 嵌入的 migration 檔案必須成對 (up/down)
func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Zero(t, len(entries)%2)
}
