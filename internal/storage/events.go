package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bibliomine/bibliomine/internal/model"
)

// SaveEvents inserts events in a single database transaction.
func (s *SQLiteStore) SaveEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (
			user_id, book_id, action_type, borrowed_at, returned_at,
			rating, device_type, session_seconds, recommended
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ev := range events {
		var returnedAt any
		if ev.ReturnedAt != nil {
			returnedAt = *ev.ReturnedAt
		}
		var rating any
		if ev.Rating != nil {
			rating = *ev.Rating
		}
		recommended := 0
		if ev.Recommended {
			recommended = 1
		}
		if _, err := stmt.ExecContext(ctx,
			ev.UserID, ev.BookID, string(ev.Action), ev.BorrowedAt, returnedAt,
			rating, string(ev.Device), ev.SessionSeconds, recommended,
		); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	return tx.Commit()
}

// ListEvents returns all stored events ordered by borrow time, then insert
// order, so repeated loads feed the engine identical input.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, book_id, action_type, borrowed_at, returned_at,
		       rating, device_type, session_seconds, recommended
		FROM events
		ORDER BY borrowed_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var (
			ev          model.Event
			action      string
			device      string
			borrowedAt  sql.NullTime
			returnedAt  sql.NullTime
			rating      sql.NullInt64
			recommended int
		)
		if err := rows.Scan(&ev.UserID, &ev.BookID, &action, &borrowedAt, &returnedAt,
			&rating, &device, &ev.SessionSeconds, &recommended); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Action = model.ActionType(action)
		ev.Device = model.DeviceType(device)
		if borrowedAt.Valid {
			ev.BorrowedAt = borrowedAt.Time
		}
		if returnedAt.Valid {
			t := returnedAt.Time
			ev.ReturnedAt = &t
		}
		if rating.Valid {
			r := int(rating.Int64)
			ev.Rating = &r
		}
		ev.Recommended = recommended != 0
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// Counts summarizes the stored dataset.
type Counts struct {
	Events  int
	Users   int
	Books   int
	Borrows int
}

// Stats returns dataset-level counts for the stats command.
func (s *SQLiteStore) Stats(ctx context.Context) (Counts, error) {
	var c Counts
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(DISTINCT book_id),
		       COUNT(CASE WHEN action_type = 'borrow' THEN 1 END)
		FROM events
	`)
	if err := row.Scan(&c.Events, &c.Users, &c.Books, &c.Borrows); err != nil {
		return Counts{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return c, nil
}

// Clear removes every stored event. Used when re-importing a dataset.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	return nil
}
