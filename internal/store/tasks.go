package store

import (
	"context"
	"fmt"
	"time"

	"github.com/casey/aide/internal/task"
	"github.com/google/uuid"
)

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Priority  string    `json:"priority"`
	Due       time.Time `json:"due,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTask persists a draft that has passed the clarification gate.
func (s *Store) CreateTask(ctx context.Context, d task.Draft) (Task, error) {
	t := Task{
		ID:       uuid.NewString(),
		Text:     d.Text,
		Source:   d.Source,
		Priority: d.Urgency,
		Due:      d.ResolvedDue,
		Status:   "open",
	}
	if t.Source == "" {
		t.Source = "personal"
	}
	if t.Priority == "" {
		t.Priority = "normal"
	}
	var due string
	if !t.Due.IsZero() {
		due = t.Due.UTC().Format(time.RFC3339)
	}
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO tasks (id, text, source, priority, due_at) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.Text, t.Source, t.Priority, nullStr(due),
	)
	if err != nil {
		return Task{}, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// ListTasks returns all open tasks, soonest due first, undated last.
func (s *Store) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, text, source, priority, COALESCE(due_at,''), status, created_at
		 FROM tasks WHERE status = 'open'
		 ORDER BY due_at IS NULL, due_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// DueSoon returns open tasks due within the window that haven't had a
// reminder fired yet.
func (s *Store) DueSoon(ctx context.Context, now time.Time, within time.Duration) ([]Task, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, text, source, priority, COALESCE(due_at,''), status, created_at
		 FROM tasks
		 WHERE status = 'open' AND reminded = 0 AND due_at IS NOT NULL AND due_at <= ?
		 ORDER BY due_at ASC`,
		now.Add(within).UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing due tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// MarkReminded records that a reminder went out so it fires once.
func (s *Store) MarkReminded(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE tasks SET reminded = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking task %s reminded: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTasks(rows rowScanner) ([]Task, error) {
	var out []Task
	for rows.Next() {
		var t Task
		var due, created string
		if err := rows.Scan(&t.ID, &t.Text, &t.Source, &t.Priority, &due, &t.Status, &created); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		if due != "" {
			t.Due, _ = time.Parse(time.RFC3339, due)
		}
		t.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created) // sqlite datetime('now')
		out = append(out, t)
	}
	return out, rows.Err()
}
