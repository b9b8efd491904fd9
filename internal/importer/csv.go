// Package importer parses and cleans borrow-event CSV exports.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/bibliomine/bibliomine/internal/common"
	"github.com/bibliomine/bibliomine/internal/model"
)

// Required CSV columns. Additional columns are ignored.
var requiredColumns = []string{"user_id", "book_id", "action_type"}

// missingTimestamp is the placeholder some exports write for absent
// timestamps.
const missingTimestamp = "#########"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DropReport counts rows removed during cleaning.
type DropReport struct {
	Total       int
	Kept        int
	MissingKey  int
	BadRating   int
	BadDuration int
}

// Dropped returns the total number of removed rows.
func (r DropReport) Dropped() int {
	return r.Total - r.Kept
}

// Options controls import behavior.
type Options struct {
	ShowProgress bool
}

// ReadEvents parses the borrow-events CSV and returns the cleaned events.
// Rows missing user_id, book_id or action_type are dropped, as are rows with
// ratings outside 1-5 or negative session durations; both timestamps accept
// the "#########" placeholder for absent values. Cleaning never fails on a
// malformed row, only on unreadable input or a missing required column.
func ReadEvents(r io.Reader, opts Options) ([]model.Event, DropReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, DropReport{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, DropReport{}, fmt.Errorf("%w: %s", common.ErrMissingColumn, name)
		}
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(-1, "importing events")
	}

	var (
		events []model.Event
		report DropReport
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("failed to read CSV row: %w", err)
		}
		report.Total++
		if bar != nil {
			_ = bar.Add(1)
		}

		ev, ok := cleanRow(record, cols, &report)
		if !ok {
			continue
		}
		report.Kept++
		events = append(events, ev)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return events, report, nil
}

func cleanRow(record []string, cols map[string]int, report *DropReport) (model.Event, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ev := model.Event{
		UserID: field("user_id"),
		BookID: field("book_id"),
		Action: model.ActionType(strings.ToLower(field("action_type"))),
		Device: model.DeviceType(strings.ToLower(field("device_type"))),
	}
	if ev.UserID == "" || ev.BookID == "" || ev.Action == "" {
		report.MissingKey++
		return model.Event{}, false
	}

	if t, ok := parseTimestamp(field("borrow_timestamp")); ok {
		ev.BorrowedAt = t
	}
	if t, ok := parseTimestamp(field("return_timestamp")); ok {
		ev.ReturnedAt = &t
	}

	if raw := field("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err == nil && (rating < 1 || rating > 5) {
			report.BadRating++
			return model.Event{}, false
		}
		if err == nil {
			r := int(rating)
			ev.Rating = &r
		}
	}

	if raw := field("session_duration"); raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err == nil && seconds < 0 {
			report.BadDuration++
			return model.Event{}, false
		}
		if err == nil {
			ev.SessionSeconds = int(seconds)
		}
	}

	if raw := field("recommendation_score"); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			ev.Recommended = score > 0
		}
	}
	return ev, true
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" || raw == missingTimestamp {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
