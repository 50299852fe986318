package exercise

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/exertrack/internal/models"
	"github.com/nkiryanov/exertrack/internal/repository"
)

// LogFilter narrows a user's log listing.
// Nil bounds mean "no bound", both bounds are inclusive.
// Limit <= 0 means "no limit".
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// UserLog is a filtered slice of a user's log together with its owner
type UserLog struct {
	User    models.User
	Entries []models.Entry
}

type ExerciseService struct {
	// Repositories to access long term data
	userRepo  repository.UserRepo
	entryRepo repository.EntryRepo

	// now is the entry date fallback, overridable in tests
	now func() time.Time
}

func NewService(userRepo repository.UserRepo, entryRepo repository.EntryRepo) *ExerciseService {
	return &ExerciseService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// CreateEntry records exercise for the user
// User existence is checked first so no orphaned entry ever gets stored
// Nil date defaults to current time
func (s *ExerciseService) CreateEntry(ctx context.Context, userID uuid.UUID, description string, duration int32, date *time.Time) (models.Entry, models.User, error) {
	var entry models.Entry

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return entry, user, err
	}

	entryDate := s.now()
	if date != nil {
		entryDate = *date
	}

	entry, err = s.entryRepo.CreateEntry(ctx, repository.CreateEntryParams{
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        entryDate,
	})
	if err != nil {
		return entry, user, fmt.Errorf("can't create log entry. Err: %w", err)
	}

	return entry, user, nil
}

// ListLog resolves the user and returns their entries narrowed by filter.
// Result is ascending by date with insertion order on equal dates, so
// repeating the call against an unchanged store yields the same sequence.
func (s *ExerciseService) ListLog(ctx context.Context, userID uuid.UUID, filter LogFilter) (UserLog, error) {
	var log UserLog

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return log, err
	}

	entries, err := s.entryRepo.ListEntries(ctx, repository.ListEntriesParams{
		UserID: user.ID,
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
	})
	if err != nil {
		return log, fmt.Errorf("can't list log entries. Err: %w", err)
	}

	return UserLog{User: user, Entries: entries}, nil
}
