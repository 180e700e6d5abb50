package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"focus-campus-bot/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB is the SQLite file plus the in-memory collections loaded from it.
// Every mutation is written to SQLite first and then applied in memory.
type DB struct {
	*sql.DB

	Users     *UserStore
	Tasks     *TaskStore
	Sessions  *SessionStore
	Reminders *ReminderStore
}

// Open opens (or creates) the database at path, applies migrations and loads
// every collection into memory. Rows that fail to decode are logged and skipped.
func Open(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// sqlite allows one writer, keep a single connection
	db.SetMaxOpenConns(1)

	if err = migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	d := &DB{
		DB:        db,
		Users:     newUserStore(db),
		Tasks:     newTaskStore(db),
		Sessions:  newSessionStore(db),
		Reminders: newReminderStore(db),
	}

	loaders := []struct {
		name string
		load func(context.Context, *logger.Logger) error
	}{
		{"users", d.Users.load},
		{"tasks", d.Tasks.load},
		{"focus_sessions", d.Sessions.load},
		{"reminder_marks", d.Reminders.load},
	}
	for _, l := range loaders {
		if err := l.load(ctx, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to load %s: %w", l.name, err)
		}
	}

	return d, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	dir, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, dir)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// ---------- encoding ---------------------------------------------------------

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func decodeTags(s string) ([]string, error) {
	var tags []string
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
