package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"focus-campus-bot/internal/logger"
)

type reminderKey struct {
	taskID string
	band   string
}

// ReminderStore remembers delivered (task, band) reminders so a band is
// never announced twice, across sweeps and restarts.
type ReminderStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	sent map[reminderKey]time.Time
}

func newReminderStore(db *sql.DB) *ReminderStore {
	return &ReminderStore{db: db, sent: make(map[reminderKey]time.Time)}
}

func (s *ReminderStore) load(ctx context.Context, log *logger.Logger) error {
	query, args, err := sq.Select("task_id", "band", "sent_at").From("reminder_marks").ToSql()
	if err != nil {
		return err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var k reminderKey
		var at string
		if err := rows.Scan(&k.taskID, &k.band, &at); err != nil {
			log.Warn("skip malformed reminder mark row", "error", err)
			continue
		}
		sentAt, err := parseTime(at)
		if err != nil {
			log.Warn("skip malformed reminder mark", "task_id", k.taskID, "error", err)
			continue
		}
		s.sent[k] = sentAt
	}
	return rows.Err()
}

func (s *ReminderStore) WasSent(_ context.Context, taskID, band string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sent[reminderKey{taskID, band}]
	return ok, nil
}

func (s *ReminderStore) MarkSent(ctx context.Context, taskID, band string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := reminderKey{taskID, band}
	if _, ok := s.sent[k]; ok {
		return nil
	}

	query, args, err := sq.Insert("reminder_marks").
		Columns("task_id", "band", "sent_at").
		Values(taskID, band, formatTime(at)).
		Suffix("ON CONFLICT (task_id, band) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert reminder mark: %w", err)
	}

	s.sent[k] = at
	return nil
}
