package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/exertrack/internal/apperrors"
	"github.com/nkiryanov/exertrack/internal/handlers/render"
	"github.com/nkiryanov/exertrack/internal/logger"
	"github.com/nkiryanov/exertrack/internal/service/exercise"
)

// Dates on the wire come in day form only
const dateLayout = "2006-01-02"

func handleCreateEntry(exerciseService exerciseService, l logger.Logger) http.Handler {
	type request struct {
		Description string `json:"description" validate:"required"`
		Duration    int32  `json:"duration" validate:"gte=0"`
		Date        string `json:"date"`
	}
	type response struct {
		Username    string    `json:"username"`
		Description string    `json:"description"`
		Duration    int32     `json:"duration"`
		Date        string    `json:"date"`
		ID          uuid.UUID `json:"id"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Error(w, "Failed to locate user")
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		// Omitted date means "now", defaulting happens in the service
		var date *time.Time
		if data.Date != "" {
			parsed, err := time.Parse(dateLayout, data.Date)
			if err != nil {
				render.Error(w, "Invalid value for field(s): date")
				return
			}
			date = &parsed
		}

		entry, user, err := exerciseService.CreateEntry(r.Context(), userID, data.Description, data.Duration, date)

		switch {
		case err == nil:
			render.JSON(w, response{
				Username:    user.Username,
				Description: entry.Description,
				Duration:    entry.Duration,
				Date:        entry.DateString(),
				ID:          user.ID,
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.Error(w, "Failed to locate user")
		default:
			l.Error("Failed to create log entry", "error", err)
			render.Error(w, "Failed to create Log Entry")
		}
	})
}

func handleListLog(exerciseService exerciseService, l logger.Logger) http.Handler {
	type responseEntry struct {
		Description string `json:"description"`
		Duration    int32  `json:"duration"`
		Date        string `json:"date"`
	}
	type response struct {
		Username string          `json:"username"`
		Count    int             `json:"count"`
		ID       uuid.UUID       `json:"id"`
		Log      []responseEntry `json:"log"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Error(w, "Unable to locate specified user")
			return
		}

		filter := logFilterFromQuery(r)
		userLog, err := exerciseService.ListLog(r.Context(), userID, filter)

		switch {
		case err == nil:
			entries := make([]responseEntry, 0, len(userLog.Entries))
			for _, e := range userLog.Entries {
				entries = append(entries, responseEntry{
					Description: e.Description,
					Duration:    e.Duration,
					Date:        e.DateString(),
				})
			}
			render.JSON(w, response{
				Username: userLog.User.Username,
				Count:    len(entries),
				ID:       userLog.User.ID,
				Log:      entries,
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.Error(w, "Unable to locate specified user")
		default:
			l.Error("Failed to list log entries", "error", err)
			render.Error(w, "Failed to retrieve log entries")
		}
	})
}

// logFilterFromQuery translates from/to/limit query params into a log filter.
// Values that fail to parse are treated as absent, not as a client error.
func logFilterFromQuery(r *http.Request) exercise.LogFilter {
	var filter exercise.LogFilter

	if from, err := time.Parse(dateLayout, r.URL.Query().Get("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(dateLayout, r.URL.Query().Get("to")); err == nil {
		filter.To = &to
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	return filter
}
