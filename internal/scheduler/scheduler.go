// Package scheduler periodically reminds users of approaching deadlines.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

const tplReminder = "⏰ *Напоминание о дедлайне!*\n\n" +
	"*Задание:* %s\n" +
	"*Дедлайн:* %s\n" +
	"*Осталось:* %s\n\n" +
	"Не забудьте выполнить задание вовремя! 💪"

// Deps are the collaborators of Reminder.
type Deps struct {
	Users  models.UserStore
	Tasks  models.TaskStore
	Marks  models.ReminderLog
	Sender messages.Sender
	Clock  clockwork.Clock
	Log    *logger.Logger
	// Lookahead limits which tasks are read on a sweep.
	Lookahead time.Duration
}

// Reminder sends at most one reminder per task and band.
type Reminder struct {
	users     models.UserStore
	tasks     models.TaskStore
	marks     models.ReminderLog
	sender    messages.Sender
	clock     clockwork.Clock
	log       *logger.Logger
	lookahead time.Duration
}

func NewReminder(d Deps) *Reminder {
	return &Reminder{
		users:     d.Users,
		tasks:     d.Tasks,
		marks:     d.Marks,
		sender:    d.Sender,
		clock:     d.Clock,
		log:       d.Log,
		lookahead: d.Lookahead,
	}
}

// Start runs Sweep every interval, the first one right away. A sweep still
// running when the next is due delays it.
func Start(r *Reminder, interval time.Duration, log *logger.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLogger(log),
		gocron.WithClock(r.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func(ctx context.Context) {
			r.Sweep(ctx)
		}),
		gocron.WithName("reminder-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to register reminder job: %w", err)
	}

	s.Start()
	log.Info("reminder scheduler started", "interval", interval)
	return s, nil
}

// Sweep checks every user's upcoming tasks once and returns how many
// reminders were delivered. A failing user or task is logged and skipped.
func (r *Reminder) Sweep(ctx context.Context) int {
	users, err := r.users.List(ctx)
	if err != nil {
		r.log.Error("failed to list users", "error", err)
		return 0
	}

	now := r.clock.Now()
	sent := 0
	for _, u := range users {
		if ctx.Err() != nil {
			break
		}
		sent += r.sweepUser(ctx, u.ID, now)
	}
	return sent
}

func (r *Reminder) sweepUser(ctx context.Context, userID int64, now time.Time) (sent int) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("reminder sweep panicked", "user_id", userID, "panic", p)
		}
	}()

	tasks, err := r.tasks.Upcoming(ctx, userID, now.Add(r.lookahead))
	if err != nil {
		r.log.Error("failed to list upcoming tasks", "user_id", userID, "error", err)
		return 0
	}

	for _, t := range tasks {
		ok, err := r.remind(ctx, t, now)
		if ok {
			sent++
		}
		if err != nil {
			r.log.Error("failed to remind", "user_id", userID, "task_id", t.ID, "error", err)
		}
	}
	return sent
}

// remind delivers the reminder for the band t is in, unless it was already
// delivered. The mark is written only after a successful send.
func (r *Reminder) remind(ctx context.Context, t models.Task, now time.Time) (bool, error) {
	band, ok := BandFor(t.Deadline.Sub(now))
	if !ok {
		return false, nil
	}

	done, err := r.marks.WasSent(ctx, t.ID, band.Key)
	if err != nil {
		return false, fmt.Errorf("failed to check reminder mark: %w", err)
	}
	if done {
		return false, nil
	}

	text := fmt.Sprintf(tplReminder, messages.Escape(t.Title), t.Deadline.Format("02.01.2006 в 15:04"), band.Label)
	if err := r.sender.Send(ctx, t.UserID, text, nil); err != nil {
		return false, err
	}
	if err := r.marks.MarkSent(ctx, t.ID, band.Key, now); err != nil {
		return true, fmt.Errorf("failed to save reminder mark: %w", err)
	}

	r.log.Info("reminder sent", "user_id", t.UserID, "task_id", t.ID, "band", band.Key)
	return true, nil
}
