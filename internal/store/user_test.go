package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexthire/internal/database"
	"nexthire/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func userRow(u model.User) []any {
	return []any{u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	sample := model.User{ID: 7, Name: "Ann", Email: "ann@x.io", PasswordHash: "hash", CreatedAt: now}

	t.Run("GetUserByID ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{7}, args)
				return &fakeRow{values: userRow(sample)}
			},
		}
		got, err := GetUserByID(ctx, db, 7)
		require.NoError(t, err)
		require.Equal(t, sample, *got)
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByID(ctx, db, 7)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"ann@x.io"}, args)
				return &fakeRow{values: userRow(sample)}
			},
		}
		got, err := GetUserByEmail(ctx, db, "ann@x.io")
		require.NoError(t, err)
		require.Equal(t, "Ann", got.Name)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: pgx.ErrNoRows}
		}
		_, err = GetUserByEmail(ctx, db, "nobody@x.io")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"Ann", "ann@x.io", "hash"}, args)
				return &fakeRow{values: []any{7, now}}
			},
		}
		u := &model.User{Name: "Ann", Email: "ann@x.io", PasswordHash: "hash"}
		got, err := CreateUser(ctx, db, u)
		require.NoError(t, err)
		require.Equal(t, 7, got.ID)
		require.Equal(t, now, got.CreatedAt)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
			},
		}
		_, err := CreateUser(ctx, db, &model.User{Email: "ann@x.io"})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("CreateUser other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("conn reset")}
			},
		}
		_, err := CreateUser(ctx, db, &model.User{})
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicate)
		require.Contains(t, err.Error(), "CreateUser")
	})

	t.Run("UpdateUserName", func(t *testing.T) {
		renamed := sample
		renamed.Name = "Annie"
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"Annie", 7}, args)
				return &fakeRow{values: userRow(renamed)}
			},
		}
		got, err := UpdateUserName(ctx, db, 7, "Annie")
		require.NoError(t, err)
		require.Equal(t, "Annie", got.Name)
		require.Equal(t, sample.Email, got.Email)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: pgx.ErrNoRows}
		}
		_, err = UpdateUserName(ctx, db, 99, "x")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateUserPassword", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{"new-hash", 7}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdateUserPassword(ctx, db, 7, "new-hash"))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		require.ErrorIs(t, UpdateUserPassword(ctx, db, 7, "new-hash"), ErrNotFound)

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("exec fail")
		}
		require.Error(t, UpdateUserPassword(ctx, db, 7, "new-hash"))
	})
}
