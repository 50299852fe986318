package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/exertrack/internal/repository"
	"github.com/nkiryanov/exertrack/internal/testutil"
)

func Test_Storage_InTx(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("commit on success", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := NewStorage(tx)

			err := storage.InTx(t.Context(), func(s repository.Storage) error {
				_, err := s.User().CreateUser(t.Context(), "tx-user")
				return err
			})

			require.NoError(t, err)
			users, err := storage.User().ListUsers(t.Context())
			require.NoError(t, err)
			assert.Len(t, users, 1, "committed user should be visible")
		})
	})

	t.Run("rollback on error", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := NewStorage(tx)
			boom := errors.New("boom")

			err := storage.InTx(t.Context(), func(s repository.Storage) error {
				if _, err := s.User().CreateUser(t.Context(), "tx-user"); err != nil {
					return err
				}
				return boom
			})

			require.ErrorIs(t, err, boom)
			users, err := storage.User().ListUsers(t.Context())
			require.NoError(t, err)
			assert.Empty(t, users, "rolled back user should not be visible")
		})
	})
}
