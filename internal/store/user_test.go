package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-vault/internal/database"
	"book-vault/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeUserRow 支援兩種 Scan 呼叫場景：
// 1) len(dest)==6 → GetUserByID / GetUserByUsername
// 2) len(dest)==1 → CreateUser (created_at)
type fakeUserRow struct {
	scanErr error
	user    *model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 6:
		*dest[0].(*string) = u.ID
		*dest[1].(*string) = u.Username
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*string) = u.Role
		*dest[5].(*time.Time) = u.CreatedAt
	case 1:
		*dest[0].(*time.Time) = u.CreatedAt
	default:
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	return nil
}

func restoreStoreGlobals() {
	newUUID = uuid.NewString
}

/* ---------- 完整測試 ---------- */

func TestUserStore(t *testing.T) {
	now := time.Now().UTC()
	sample := &model.User{
		ID:           "19aeb2c7-9ad7-4bfd-9fa3-3982931b50f3",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
	}

	/* --- GetUserByID --- */
	t.Run("GetUserByID success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByID(context.Background(), db, sample.ID)
		require.NoError(t, err)
		require.Equal(t, sample.Email, u.Email)
		require.True(t, u.IsAdmin())
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByID(context.Background(), db, "missing")
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	/* --- GetUserByUsername --- */
	t.Run("GetUserByUsername success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByUsername(context.Background(), db, "alice")
		require.NoError(t, err)
		require.Equal(t, sample.ID, u.ID)
	})

	t.Run("GetUserByUsername not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByUsername(context.Background(), db, "bob")
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	t.Run("GetUserByUsername scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("conn lost")}
			},
		}
		_, err := GetUserByUsername(context.Background(), db, "bob")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	/* --- CreateUser --- */
	t.Run("CreateUser assigns id", func(t *testing.T) {
		t.Cleanup(restoreStoreGlobals)
		newUUID = func() string { return "generated-id" }
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeUserRow{user: &model.User{CreatedAt: now}}
			},
		}
		u := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "pwdhash", Role: model.RoleUser}
		created, err := CreateUser(context.Background(), db, u)
		require.NoError(t, err)
		require.Equal(t, "generated-id", created.ID)
		require.Equal(t, "generated-id", gotArgs[0])
		require.WithinDuration(t, now, created.CreatedAt, time.Second)
	})

	t.Run("CreateUser duplicate username", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{Username: "alice"})
		require.Error(t, err)
		require.True(t, IsUniqueViolation(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsUniqueViolation(errors.New("other")))
	require.False(t, IsUniqueViolation(nil))
}
