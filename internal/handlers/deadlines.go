package handlers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"focus-campus-bot/internal/extractor"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"

	"github.com/google/uuid"
)

const (
	minDeadlineText = 10
	deadlinesShown  = 10
)

var kbCandidate = messages.Keyboard{{btnConfirmDeadline}, {btnEditDeadline}, {btnCancelDeadline}}

// detectDeadline offers a deadline found in free text of an idle,
// onboarded user.
func (h *Handler) detectDeadline(ctx context.Context, user models.User, text string) {
	if !user.OnboardingCompleted {
		return
	}
	if strings.HasPrefix(text, "/") || utf8.RuneCountInString(text) < minDeadlineText {
		return
	}

	d, ok := extractor.Extract(text, h.clock.Now())
	if !ok {
		return
	}

	var b strings.Builder
	if h.pending.Put(user.ID, d) {
		b.WriteString(txtCandidateReplaced)
	}
	fmt.Fprintf(&b, tplDeadlineFound,
		messages.Escape(d.Title), messages.Escape(d.Subject), d.Due.Format(layoutDateTime))

	h.log.Debug("deadline candidate", "user_id", user.ID, "due", d.Due, "subject", d.Subject)
	h.reply(ctx, user.ID, b.String(), kbCandidate)
}

func (h *Handler) confirmDeadline(ctx context.Context, userID int64) {
	d, ok := h.pending.Take(userID)
	if !ok {
		h.reply(ctx, userID, txtDeadlineNotFound, nil)
		return
	}

	task := models.Task{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Title:              d.Title,
		Deadline:           d.Due,
		Subject:            d.Subject,
		Status:             models.StatusPending,
		Priority:           1,
		EstimatedPomodoros: 1,
	}
	if err := h.tasks.Create(ctx, task); err != nil {
		h.log.Error("failed to create task", "user_id", userID, "error", err)
		h.reply(ctx, userID, txtInternalError, nil)
		return
	}

	h.log.Info("task created", "user_id", userID, "task_id", task.ID)
	h.reply(ctx, userID, fmt.Sprintf(tplDeadlineAdded,
		messages.Escape(task.Title), task.Deadline.Format(layoutDateAtTime), messages.Escape(task.Subject)), nil)
}

func (h *Handler) dropDeadline(ctx context.Context, userID int64, edit bool) {
	h.pending.Drop(userID)
	if edit {
		h.reply(ctx, userID, txtDeadlineEdit, nil)
		return
	}
	h.reply(ctx, userID, txtDeadlineCanceled, nil)
}

func (h *Handler) addDeadlineHint(ctx context.Context, userID int64) {
	if h.states.State(userID) != models.StateIdle {
		h.reply(ctx, userID, txtAddHintBusy, nil)
		return
	}
	h.reply(ctx, userID, txtAddHint, nil)
}

// ---------- /deadlines ----------
func (h *Handler) showDeadlines(ctx context.Context, user models.User) {
	if !user.OnboardingCompleted {
		h.reply(ctx, user.ID, txtNeedOnboarding, nil)
		return
	}
	if !h.guard.Allowed(ctx, user.ID, models.StateFocusWorking) {
		return
	}

	now := h.clock.Now()
	// overdue pending tasks stay listed with the red marker
	tasks, err := h.tasks.Upcoming(ctx, user.ID, now.Add(h.window))
	if err != nil {
		h.log.Error("failed to list deadlines", "user_id", user.ID, "error", err)
		h.reply(ctx, user.ID, txtInternalError, nil)
		return
	}

	if len(tasks) == 0 {
		h.reply(ctx, user.ID, fmt.Sprintf(tplNoDeadlines, int(h.window/(24*time.Hour))), nil)
		return
	}

	h.reply(ctx, user.ID, formatDeadlines(tasks, now), nil)
}

func formatDeadlines(tasks []models.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(txtDeadlinesHead)

	for i, t := range tasks {
		if i == deadlinesShown {
			fmt.Fprintf(&b, tplDeadlinesMore, len(tasks)-deadlinesShown)
			break
		}
		days := int(math.Floor(t.Deadline.Sub(now).Hours() / 24))
		fmt.Fprintf(&b, tplDeadlineItem, urgencyMarker(days),
			messages.Escape(t.Title), messages.Escape(t.Subject), t.Deadline.Format(layoutDate), days)
	}
	return b.String()
}

func urgencyMarker(daysLeft int) string {
	switch {
	case daysLeft > 3:
		return "🟢"
	case daysLeft > 1:
		return "🟡"
	default:
		return "🔴"
	}
}
