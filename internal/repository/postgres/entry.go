package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/exertrack/internal/apperrors"
	"github.com/nkiryanov/exertrack/internal/models"
	"github.com/nkiryanov/exertrack/internal/repository"
)

type EntryRepo struct {
	DB DBTX
}

const createEntry = `-- name: CreateEntry
INSERT INTO entries (id, user_id, description, duration, entry_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, seq, user_id, description, duration, entry_date
`

func (r *EntryRepo) CreateEntry(ctx context.Context, arg repository.CreateEntryParams) (models.Entry, error) {
	rows, _ := r.DB.Query(ctx, createEntry, uuid.New(), arg.UserID, arg.Description, arg.Duration, arg.Date)
	entry, err := pgx.CollectOneRow(rows, rowToEntry)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return entry, apperrors.ErrUserNotFound
		}

		return entry, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

const listEntries = `-- name: ListEntries
SELECT id, seq, user_id, description, duration, entry_date FROM entries
WHERE user_id = $1
`

// ListEntries selects user entries ascending by date.
// Optional bounds are inclusive on both sides; zero limit means no limit.
func (r *EntryRepo) ListEntries(ctx context.Context, arg repository.ListEntriesParams) ([]models.Entry, error) {
	sql := &strings.Builder{}
	sql.WriteString(listEntries)
	args := []any{arg.UserID}

	if arg.From != nil {
		args = append(args, *arg.From)
		fmt.Fprintf(sql, "AND entry_date >= $%d\n", len(args))
	}
	if arg.To != nil {
		args = append(args, *arg.To)
		fmt.Fprintf(sql, "AND entry_date <= $%d\n", len(args))
	}

	// Seq keeps entries with equal dates in insertion order
	sql.WriteString("ORDER BY entry_date, seq\n")

	if arg.Limit > 0 {
		args = append(args, arg.Limit)
		fmt.Fprintf(sql, "LIMIT $%d\n", len(args))
	}

	rows, _ := r.DB.Query(ctx, sql.String(), args...)
	entries, err := pgx.CollectRows(rows, rowToEntry)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func rowToEntry(row pgx.CollectableRow) (models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.Seq, &e.UserID, &e.Description, &e.Duration, &e.Date)
	return e, err
}
