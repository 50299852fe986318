package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkiryanov/exertrack/internal/handlers"
	"github.com/nkiryanov/exertrack/internal/logger"
	"github.com/nkiryanov/exertrack/internal/repository/postgres"
	"github.com/nkiryanov/exertrack/internal/service/exercise"
	"github.com/nkiryanov/exertrack/internal/service/user"
	"github.com/nkiryanov/exertrack/internal/testutil"
)

type Services struct {
	UserService     *user.UserService
	ExerciseService *exercise.ExerciseService
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely seed data through services
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		storage := postgres.NewStorage(tx)

		// Initialize services with production defaults
		us := user.NewService(user.Config{StrictEmptyList: true}, storage.User())
		es := exercise.NewService(storage.User(), storage.Entry())

		// Complete all together as router
		router := handlers.NewRouter(us, es, logger.NewNoOpLogger(), nil)

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			UserService:     us,
			ExerciseService: es,
		})
	})
}
