package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/exertrack/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user with given username
	// Usernames are not unique: two calls with the same name create two users
	CreateUser(ctx context.Context, username string) (models.User, error)

	// Get user by it's id
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)

	// List all users ordered by creation time
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Parameters to create log entry
// Date expected to be set by the caller (defaulting is a service concern)
type CreateEntryParams struct {
	UserID      uuid.UUID
	Description string
	Duration    int32
	Date        time.Time
}

// Parameters to list user log entries
// Nil bounds mean "no bound", Limit <= 0 means "no limit"
// Both bounds are inclusive: From <= date <= To
type ListEntriesParams struct {
	UserID uuid.UUID
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Entry repository interface
type EntryRepo interface {
	// Create log entry for user
	// If referenced user not found must return apperrors.ErrUserNotFound
	CreateEntry(ctx context.Context, arg CreateEntryParams) (models.Entry, error)

	// List entries ascending by date, insertion order on equal dates
	// Unknown user id yields an empty list, not an error
	ListEntries(ctx context.Context, arg ListEntriesParams) ([]models.Entry, error)
}

// Storage combines all repositories over a single connection handle
type Storage interface {
	User() UserRepo
	Entry() EntryRepo

	InTx(ctx context.Context, fn func(Storage) error) error
}
