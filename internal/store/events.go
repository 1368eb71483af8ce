package store

import (
	"context"
	"fmt"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/google/uuid"
)

type eventRow struct {
	calendar.EventRef
	Recurrence    string
	RecurrenceEnd time.Time
}

// FetchEvents returns the event snapshot for a window, with recurring
// masters expanded into concrete instances that fall inside it.
func (s *Store) FetchEvents(ctx context.Context, timeMin, timeMax time.Time, source string) ([]calendar.EventRef, error) {
	q := `SELECT id, summary, description, location, start_at, COALESCE(end_at,''), all_day,
	             source, recurrence, COALESCE(recurrence_end,'')
	      FROM events WHERE start_at <= ?`
	args := []any{timeMax.UTC().Format(time.RFC3339)}
	if source != "" {
		q += " AND source = ?"
		args = append(args, source)
	}
	q += " ORDER BY start_at ASC"

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer rows.Close()

	var out []calendar.EventRef
	for rows.Next() {
		var r eventRow
		var startStr, endStr, recEndStr string
		var allDay int
		if err := rows.Scan(&r.ID, &r.Summary, &r.Description, &r.Location, &startStr, &endStr,
			&allDay, &r.Source, &r.Recurrence, &recEndStr); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		r.Start.Time, _ = time.Parse(time.RFC3339, startStr)
		r.Start.AllDay = allDay == 1
		if endStr != "" {
			r.End.Time, _ = time.Parse(time.RFC3339, endStr)
			r.End.AllDay = r.Start.AllDay
		}
		if recEndStr != "" {
			r.RecurrenceEnd, _ = time.Parse(time.RFC3339, recEndStr)
		}
		out = append(out, expand(r, timeMin, timeMax)...)
	}
	return out, rows.Err()
}

// CreateEvent inserts a single non-recurring event.
func (s *Store) CreateEvent(ctx context.Context, d calendar.EventDraft) (calendar.EventRef, error) {
	if d.Source == "" {
		d.Source = "personal"
	}
	end := d.End
	if end.IsZero() {
		end = d.Start.Add(time.Hour)
	}
	ev := calendar.EventRef{
		ID:      uuid.NewString(),
		Summary: d.Summary,
		Start:   calendar.EventTime{Time: d.Start},
		End:     calendar.EventTime{Time: end},
		Source:  d.Source,
	}
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO events (id, summary, start_at, end_at, source) VALUES (?, ?, ?, ?, ?)",
		ev.ID, ev.Summary, ev.Start.Time.UTC().Format(time.RFC3339), ev.End.Time.UTC().Format(time.RFC3339), ev.Source,
	)
	if err != nil {
		return calendar.EventRef{}, fmt.Errorf("creating event: %w", err)
	}
	return ev, nil
}
