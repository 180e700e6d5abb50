package models

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// DefaultSubject is used when no keyword matches the task text.
const DefaultSubject = "другое"

// Role is the academic role collected during onboarding.
type Role string

const (
	RoleFreshman Role = "freshman"
	RoleBachelor Role = "bachelor"
	RoleMaster   Role = "master"
	RolePhD      Role = "phd"
)

// ParseRole validates a persisted role label. The empty label means "not set".
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case "", RoleFreshman, RoleBachelor, RoleMaster, RolePhD:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Title is the human readable role name.
func (r Role) Title() string {
	switch r {
	case RoleFreshman:
		return "первокурсник"
	case RoleBachelor:
		return "бакалавр"
	case RoleMaster:
		return "магистр"
	case RolePhD:
		return "аспирант"
	}
	return "не указана"
}

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOverdue    TaskStatus = "overdue"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return st, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// User is a bot user and the profile collected during onboarding.
type User struct {
	ID                  int64
	University          string
	Group               string
	Role                Role
	CalendarURL         string
	Tags                []string
	OnboardingCompleted bool
	CreatedAt           time.Time
}

// Task is a deadline owned by exactly one user.
type Task struct {
	ID                 string
	UserID             int64
	Title              string
	Description        string
	Deadline           time.Time
	Subject            string
	Tags               []string
	Status             TaskStatus
	Priority           int
	EstimatedPomodoros int
	CompletedPomodoros int
}

// StatusAt returns the status as seen at now. Overdue is never stored,
// a pending task past its deadline is reported as overdue.
func (t Task) StatusAt(now time.Time) TaskStatus {
	if t.Status == StatusPending && t.Deadline.Before(now) {
		return StatusOverdue
	}
	return t.Status
}

// FocusSession is one timed work interval.
type FocusSession struct {
	ID        string
	UserID    int64
	TaskID    string
	StartTime time.Time
	Duration  int // в минутах
	Completed bool
}

// UserStore defines persistence operations for users.
type UserStore interface {
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) error
	List(ctx context.Context) ([]User, error)
}

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) error
	ListByUser(ctx context.Context, userID int64) ([]Task, error)
	// Upcoming returns pending tasks of the user with deadline <= until.
	Upcoming(ctx context.Context, userID int64, until time.Time) ([]Task, error)
}

// SessionStore defines persistence operations for focus sessions.
type SessionStore interface {
	Create(ctx context.Context, session FocusSession) error
	// MarkCompleted reports whether the session changed state.
	MarkCompleted(ctx context.Context, id string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]FocusSession, error)
}

// ReminderLog remembers which (task, band) reminders were delivered.
type ReminderLog interface {
	WasSent(ctx context.Context, taskID, band string) (bool, error)
	MarkSent(ctx context.Context, taskID, band string, at time.Time) error
}
