package exercise

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/exertrack/internal/apperrors"
	"github.com/nkiryanov/exertrack/internal/models"
	"github.com/nkiryanov/exertrack/internal/repository/postgres"
	"github.com/nkiryanov/exertrack/internal/service/user"
	"github.com/nkiryanov/exertrack/internal/testutil"
)

func TestExercise(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	date := func(day int) time.Time {
		return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}

	// Helper function to create ExerciseService within transaction
	withTx := func(t *testing.T, fn func(s *ExerciseService, owner models.User)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)
			exerciseService := NewService(storage.User(), storage.Entry())

			// Create user for tests purpose
			userService := user.NewService(user.Config{}, storage.User())
			owner, err := userService.CreateUser(t.Context(), "test-user")
			require.NoError(t, err, "creating user should not fail")

			fn(exerciseService, owner)
		})
	}

	seedLog := func(t *testing.T, s *ExerciseService, owner models.User) {
		t.Helper()
		for _, day := range []int{1, 5, 10} {
			d := date(day)
			_, _, err := s.CreateEntry(t.Context(), owner.ID, "run", 30, &d)
			require.NoError(t, err)
		}
	}

	days := func(entries []models.Entry) []int {
		got := make([]int, 0, len(entries))
		for _, e := range entries {
			got = append(got, e.Date.Day())
		}
		return got
	}

	t.Run("CreateEntry", func(t *testing.T) {
		t.Run("create with date ok", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				d := date(5)
				entry, entryUser, err := s.CreateEntry(t.Context(), owner.ID, "morning run", 42, &d)

				require.NoError(t, err, "creating entry should not fail")
				require.NotEmpty(t, entry.ID, "entry ID should not be empty")
				require.Equal(t, owner.ID, entry.UserID)
				require.Equal(t, "morning run", entry.Description)
				require.Equal(t, int32(42), entry.Duration)
				require.True(t, entry.Date.Equal(d))
				require.Equal(t, owner.Username, entryUser.Username, "owning user should be returned")
			})
		})

		t.Run("date defaults to now", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				frozen := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
				s.now = func() time.Time { return frozen }

				entry, _, err := s.CreateEntry(t.Context(), owner.ID, "run", 10, nil)

				require.NoError(t, err)
				require.True(t, entry.Date.Equal(frozen), "nil date should fall back to current time")
			})
		})

		t.Run("unknown user fail", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				_, _, err := s.CreateEntry(t.Context(), uuid.New(), "run", 10, nil)

				require.ErrorIs(t, err, apperrors.ErrUserNotFound)

				// Nothing should be stored for the real user either
				log, err := s.ListLog(t.Context(), owner.ID, LogFilter{})
				require.NoError(t, err)
				require.Empty(t, log.Entries, "no orphaned entries expected")
			})
		})
	})

	t.Run("ListLog", func(t *testing.T) {
		t.Run("unknown user fail", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, _ models.User) {
				_, err := s.ListLog(t.Context(), uuid.New(), LogFilter{})

				require.ErrorIs(t, err, apperrors.ErrUserNotFound)
			})
		})

		t.Run("no filter returns all ascending", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				seedLog(t, s, owner)

				log, err := s.ListLog(t.Context(), owner.ID, LogFilter{})

				require.NoError(t, err)
				require.Equal(t, owner.ID, log.User.ID)
				require.Equal(t, []int{1, 5, 10}, days(log.Entries))
			})
		})

		t.Run("combined range inclusive", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				seedLog(t, s, owner)

				from, to := date(3), date(8)
				log, err := s.ListLog(t.Context(), owner.ID, LogFilter{From: &from, To: &to})

				require.NoError(t, err)
				require.Equal(t, []int{5}, days(log.Entries))
			})
		})

		t.Run("limit keeps earliest", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				seedLog(t, s, owner)

				log, err := s.ListLog(t.Context(), owner.ID, LogFilter{Limit: 1})

				require.NoError(t, err)
				require.Equal(t, []int{1}, days(log.Entries))
			})
		})

		t.Run("repeatable for unchanged store", func(t *testing.T) {
			withTx(t, func(s *ExerciseService, owner models.User) {
				seedLog(t, s, owner)

				first, err := s.ListLog(t.Context(), owner.ID, LogFilter{Limit: 2})
				require.NoError(t, err)
				second, err := s.ListLog(t.Context(), owner.ID, LogFilter{Limit: 2})
				require.NoError(t, err)

				require.Equal(t, first.Entries, second.Entries, "identical params should produce identical sequences")
			})
		})
	})
}
