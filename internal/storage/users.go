package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/models"
)

var userColumns = []string{"id", "university", "grp", "role", "calendar_url", "tags", "onboarding_completed", "created_at"}

// UserStore keeps all users in memory, backed by the users table.
type UserStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	byID map[int64]models.User
}

func newUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, byID: make(map[int64]models.User)}
}

func (s *UserStore) load(ctx context.Context, log *logger.Logger) error {
	query, args, err := sq.Select(userColumns...).From("users").ToSql()
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
			u                   models.User
			role, tags, created string
			completed           int
		)
		if err := rows.Scan(&u.ID, &u.University, &u.Group, &role, &u.CalendarURL, &tags, &completed, &created); err != nil {
			log.Warn("skip malformed user row", "error", err)
			continue
		}
		if err := decodeUser(&u, role, tags, created); err != nil {
			log.Warn("skip malformed user", "user_id", u.ID, "error", err)
			continue
		}
		u.OnboardingCompleted = completed != 0
		s.byID[u.ID] = u
	}
	return rows.Err()
}

func decodeUser(u *models.User, role, tags, created string) error {
	var err error
	if u.Role, err = models.ParseRole(role); err != nil {
		return err
	}
	if u.Tags, err = decodeTags(tags); err != nil {
		return fmt.Errorf("bad tags: %w", err)
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return fmt.Errorf("bad created_at: %w", err)
	}
	return nil
}

// Get returns a copy of the user or models.ErrNotFound.
func (s *UserStore) Get(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return cloneUser(u), nil
}

// Create inserts a new user, failing with models.ErrAlreadyExists on conflict.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[user.ID]; ok {
		return models.User{}, models.ErrAlreadyExists
	}

	tags, err := encodeTags(user.Tags)
	if err != nil {
		return models.User{}, err
	}
	query, args, err := sq.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.University, user.Group, string(user.Role), user.CalendarURL,
			tags, boolToInt(user.OnboardingCompleted), formatTime(user.CreatedAt)).
		ToSql()
	if err != nil {
		return models.User{}, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	user = cloneUser(user)
	s.byID[user.ID] = user
	return cloneUser(user), nil
}

// Update overwrites every mutable field of an existing user.
func (s *UserStore) Update(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[user.ID]
	if !ok {
		return models.ErrNotFound
	}
	// onboarding never reverts
	user.OnboardingCompleted = user.OnboardingCompleted || old.OnboardingCompleted
	user.CreatedAt = old.CreatedAt

	tags, err := encodeTags(user.Tags)
	if err != nil {
		return err
	}
	query, args, err := sq.Update("users").
		SetMap(sq.Eq{
			"university":           user.University,
			"grp":                  user.Group,
			"role":                 string(user.Role),
			"calendar_url":         user.CalendarURL,
			"tags":                 tags,
			"onboarding_completed": boolToInt(user.OnboardingCompleted),
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.byID[user.ID] = cloneUser(user)
	return nil
}

// List returns all users ordered by id.
func (s *UserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.User, 0, len(s.byID))
	for _, u := range s.byID {
		res = append(res, cloneUser(u))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func cloneUser(u models.User) models.User {
	u.Tags = slices.Clone(u.Tags)
	return u
}
