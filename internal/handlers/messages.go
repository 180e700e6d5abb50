package handlers

import (
	"context"

	"focus-campus-bot/internal/models"
)

// HandleText handles plain text and reply-button presses. Known buttons go
// first, then the step of the active flow, then deadline extraction.
func (h *Handler) HandleText(ctx context.Context, user models.User, text string) {
	if text == "" {
		return
	}

	switch text {
	case btnConfirmDeadline:
		h.confirmDeadline(ctx, user.ID)
		return
	case btnEditDeadline, btnCancelDeadline:
		h.dropDeadline(ctx, user.ID, text == btnEditDeadline)
		return
	case btnMyDeadlines:
		h.showDeadlines(ctx, user)
		return
	case btnAddDeadline, btnAddTask:
		h.addDeadlineHint(ctx, user.ID)
		return
	case btnStartFocus, btnStartFocusSession, btnNewSession:
		h.startFocus(ctx, user)
		return
	case btnStats, btnProgress:
		if h.guard.Allowed(ctx, user.ID, models.StateFocusWorking) {
			h.sendStats(ctx, user.ID)
		}
		return
	}

	switch st := h.states.State(user.ID); st {
	case models.StateIdle:
		h.detectDeadline(ctx, user, text)
	case models.StateOnboardingStart, models.StateOnboardingGroup, models.StateOnboardingRole,
		models.StateOnboardingCalendar, models.StateOnboardingTags:
		h.onboardingStep(ctx, user, st, text)
	case models.StateFocusSelectDuration:
		h.selectDuration(ctx, user, text)
	case models.StateFocusWorking, models.StateFocusBreak, models.StateFocusLongBreak:
		// free text during a session is ignored
	}
}
