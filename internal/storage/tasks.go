package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/models"
)

var taskColumns = []string{
	"id", "user_id", "title", "description", "deadline", "subject", "tags",
	"status", "priority", "estimated_pomodoros", "completed_pomodoros",
}

// TaskStore keeps all tasks in memory, indexed by id and by owner.
type TaskStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	byID   map[string]models.Task
	byUser map[int64][]string
}

func newTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{
		db:     db,
		byID:   make(map[string]models.Task),
		byUser: make(map[int64][]string),
	}
}

func (s *TaskStore) load(ctx context.Context, log *logger.Logger) error {
	query, args, err := sq.Select(taskColumns...).From("tasks").OrderBy("rowid").ToSql()
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
			t                      models.Task
			deadline, tags, status string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &deadline, &t.Subject, &tags,
			&status, &t.Priority, &t.EstimatedPomodoros, &t.CompletedPomodoros); err != nil {
			log.Warn("skip malformed task row", "error", err)
			continue
		}
		if err := decodeTask(&t, deadline, tags, status); err != nil {
			log.Warn("skip malformed task", "task_id", t.ID, "error", err)
			continue
		}
		s.put(t)
	}
	return rows.Err()
}

func decodeTask(t *models.Task, deadline, tags, status string) error {
	var err error
	if t.Deadline, err = parseTime(deadline); err != nil {
		return fmt.Errorf("bad deadline: %w", err)
	}
	if t.Tags, err = decodeTags(tags); err != nil {
		return fmt.Errorf("bad tags: %w", err)
	}
	if t.Status, err = models.ParseTaskStatus(status); err != nil {
		return err
	}
	return nil
}

// put must be called with mu held.
func (s *TaskStore) put(t models.Task) {
	if _, ok := s.byID[t.ID]; !ok {
		s.byUser[t.UserID] = append(s.byUser[t.UserID], t.ID)
	}
	s.byID[t.ID] = cloneTask(t)
}

// Create persists a new task.
func (s *TaskStore) Create(ctx context.Context, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[task.ID]; ok {
		return models.ErrAlreadyExists
	}
	if task.Subject == "" {
		task.Subject = models.DefaultSubject
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return err
	}
	query, args, err := sq.Insert("tasks").
		Columns(taskColumns...).
		Values(task.ID, task.UserID, task.Title, task.Description, formatTime(task.Deadline), task.Subject, tags,
			string(task.Status), task.Priority, task.EstimatedPomodoros, task.CompletedPomodoros).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	s.put(task)
	return nil
}

// ListByUser returns the user's tasks in creation order.
func (s *TaskStore) ListByUser(_ context.Context, userID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	res := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.byID[id]; ok {
			res = append(res, cloneTask(t))
		}
	}
	return res, nil
}

// Upcoming returns pending tasks with deadline <= until, earliest first.
// Tasks already past their deadline are included, callers filter by time left.
func (s *TaskStore) Upcoming(ctx context.Context, userID int64, until time.Time) ([]models.Task, error) {
	all, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := all[:0]
	for _, t := range all {
		if t.Status == models.StatusPending && !t.Deadline.After(until) {
			res = append(res, t)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Deadline.Before(res[j].Deadline) })
	return res, nil
}

func cloneTask(t models.Task) models.Task {
	t.Tags = slices.Clone(t.Tags)
	return t
}
