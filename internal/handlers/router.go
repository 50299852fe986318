package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkiryanov/exertrack/internal/handlers/middleware"
	"github.com/nkiryanov/exertrack/internal/handlers/render"
	"github.com/nkiryanov/exertrack/internal/logger"
	"github.com/nkiryanov/exertrack/internal/models"
	"github.com/nkiryanov/exertrack/internal/service/exercise"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	userService userService,
	exerciseService exerciseService,
	l logger.Logger,
	registry *prometheus.Registry, // nil disables metrics
) http.Handler {
	root := http.NewServeMux()

	root.Handle("POST /api/users", handleCreateUser(userService, l))
	root.Handle("GET /api/users", handleListUsers(userService, l))
	root.Handle("POST /api/users/{id}/exercises", handleCreateEntry(exerciseService, l))
	root.Handle("GET /api/users/{id}/logs", handleListLog(exerciseService, l))

	root.Handle("GET /healthz", handleHealth())

	mds := []func(http.Handler) http.Handler{
		middleware.LoggerMiddleware(l),
	}

	if registry != nil {
		root.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mds = append(mds, middleware.MetricsMiddleware(middleware.NewMetricsCollector(registry)))
	}

	return chain(root, mds...)
}

func handleHealth() http.Handler {
	type response struct {
		Status string `json:"status"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, response{Status: "ok"})
	})
}

type userService interface {
	// Create user with given username
	// Has to return apperrors.ErrUsernameInvalid if username is empty after trimming
	CreateUser(ctx context.Context, username string) (models.User, error)

	// List all users
	// Has to return apperrors.ErrNoUsers when store is empty and strict policy is on
	ListUsers(ctx context.Context) ([]models.User, error)
}

type exerciseService interface {
	// Record exercise entry for user, nil date means "now"
	// Has to return apperrors.ErrUserNotFound if user does not exist
	CreateEntry(ctx context.Context, userID uuid.UUID, description string, duration int32, date *time.Time) (models.Entry, models.User, error)

	// List user log narrowed by filter
	// Has to return apperrors.ErrUserNotFound if user does not exist
	ListLog(ctx context.Context, userID uuid.UUID, filter exercise.LogFilter) (exercise.UserLog, error)
}
