package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/models"
)

var sessionColumns = []string{"id", "user_id", "task_id", "start_time", "duration", "completed"}

// SessionStore keeps focus sessions in memory, indexed by id and by owner.
type SessionStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	byID   map[string]models.FocusSession
	byUser map[int64][]string
}

func newSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{
		db:     db,
		byID:   make(map[string]models.FocusSession),
		byUser: make(map[int64][]string),
	}
}

func (s *SessionStore) load(ctx context.Context, log *logger.Logger) error {
	query, args, err := sq.Select(sessionColumns...).From("focus_sessions").OrderBy("rowid").ToSql()
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
		var (
			fs        models.FocusSession
			start     string
			completed int
		)
		if err := rows.Scan(&fs.ID, &fs.UserID, &fs.TaskID, &start, &fs.Duration, &completed); err != nil {
			log.Warn("skip malformed focus session row", "error", err)
			continue
		}
		if fs.StartTime, err = parseTime(start); err != nil {
			log.Warn("skip malformed focus session", "session_id", fs.ID, "error", err)
			continue
		}
		fs.Completed = completed != 0
		s.put(fs)
	}
	return rows.Err()
}

func (s *SessionStore) put(fs models.FocusSession) {
	if _, ok := s.byID[fs.ID]; !ok {
		s.byUser[fs.UserID] = append(s.byUser[fs.UserID], fs.ID)
	}
	s.byID[fs.ID] = fs
}

// Create persists a new focus session.
func (s *SessionStore) Create(ctx context.Context, session models.FocusSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[session.ID]; ok {
		return models.ErrAlreadyExists
	}

	query, args, err := sq.Insert("focus_sessions").
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, session.TaskID, formatTime(session.StartTime),
			session.Duration, boolToInt(session.Completed)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert focus session: %w", err)
	}

	s.put(session)
	return nil
}

// MarkCompleted sets the completed flag once. It reports false when the
// session was already completed.
func (s *SessionStore) MarkCompleted(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.byID[id]
	if !ok {
		return false, models.ErrNotFound
	}
	if fs.Completed {
		return false, nil
	}

	query, args, err := sq.Update("focus_sessions").
		Set("completed", 1).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("failed to complete focus session: %w", err)
	}

	fs.Completed = true
	s.byID[id] = fs
	return true, nil
}

// ListByUser returns the user's sessions in creation order.
func (s *SessionStore) ListByUser(_ context.Context, userID int64) ([]models.FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	res := make([]models.FocusSession, 0, len(ids))
	for _, id := range ids {
		if fs, ok := s.byID[id]; ok {
			res = append(res, fs)
		}
	}
	return res, nil
}
