package handlers

import (
	"context"
	"fmt"
	"strings"

	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"
)

func (h *Handler) HandleCommand(ctx context.Context, user models.User, cmd string) {
	switch cmd {
	case "start":
		h.handleStart(ctx, user)
	case "focus":
		h.startFocus(ctx, user)
	case "deadlines":
		h.showDeadlines(ctx, user)
	case "schedule":
		h.showSchedule(ctx, user)
	case "stats":
		if !h.guard.Allowed(ctx, user.ID,
			models.StateFocusWorking, models.StateFocusBreak, models.StateFocusLongBreak) {
			return
		}
		h.sendStats(ctx, user.ID)
	case "help":
		h.reply(ctx, user.ID, txtHelp, nil)
	default:
		h.reply(ctx, user.ID, txtUnknownCommand, nil)
	}
}

// ---------- /schedule ----------
func (h *Handler) showSchedule(ctx context.Context, user models.User) {
	if !user.OnboardingCompleted {
		h.reply(ctx, user.ID, txtNeedOnboarding, nil)
		return
	}
	if !h.guard.Allowed(ctx, user.ID, models.StateFocusWorking) {
		return
	}

	tags := txtNoTags
	if len(user.Tags) > 0 {
		tags = messages.Escape(strings.Join(user.Tags, ", "))
	}
	calendar := txtCalendarOff
	if user.CalendarURL != "" {
		calendar = txtCalendarOn
	}

	text := fmt.Sprintf(tplSchedule, orNotSet(user.University), orNotSet(user.Group), tags, calendar)
	h.reply(ctx, user.ID, text, messages.Keyboard{
		{btnMyDeadlines},
		{btnStartFocus, btnStats},
	})
}

// ---------- /stats ----------

type stats struct {
	CompletedTasks    int
	CompletedSessions int
	FocusMinutes      int
	ActiveDeadlines   int
}

func (h *Handler) collectStats(ctx context.Context, userID int64) (stats, error) {
	var s stats

	tasks, err := h.tasks.ListByUser(ctx, userID)
	if err != nil {
		return s, fmt.Errorf("failed to list tasks: %w", err)
	}
	sessions, err := h.sessions.ListByUser(ctx, userID)
	if err != nil {
		return s, fmt.Errorf("failed to list sessions: %w", err)
	}

	now := h.clock.Now()
	for _, t := range tasks {
		switch t.StatusAt(now) {
		case models.StatusCompleted:
			s.CompletedTasks++
		case models.StatusPending:
			s.ActiveDeadlines++
		case models.StatusInProgress, models.StatusOverdue:
		}
	}
	for _, fs := range sessions {
		if fs.Completed {
			s.CompletedSessions++
			s.FocusMinutes += fs.Duration
		}
	}
	return s, nil
}

func (h *Handler) sendStats(ctx context.Context, userID int64) {
	s, err := h.collectStats(ctx, userID)
	if err != nil {
		h.log.Error("failed to collect stats", "user_id", userID, "error", err)
		h.reply(ctx, userID, txtInternalError, nil)
		return
	}
	text := fmt.Sprintf(tplStats, s.CompletedTasks, s.CompletedSessions, s.FocusMinutes, s.ActiveDeadlines)
	h.reply(ctx, userID, text, nil)
}

func orNotSet(s string) string {
	if s == "" {
		return txtNotSet
	}
	return messages.Escape(s)
}
