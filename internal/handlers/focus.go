package handlers

import (
	"context"
	"fmt"
	"time"

	"focus-campus-bot/internal/fsm"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"

	"github.com/google/uuid"
)

// minutes per duration button
var durationByLabel = map[string]int{
	btnFocus25: 25,
	btnFocus50: 50,
	btnFocus15: 15,
}

var (
	kbDurations = messages.Keyboard{{btnFocus25, btnFocus50}, {btnFocus15}}
	kbFocusDone = messages.Keyboard{{btnNewSession, btnStats}}
)

// ---------- /focus ----------
func (h *Handler) startFocus(ctx context.Context, user models.User) {
	if !user.OnboardingCompleted {
		h.reply(ctx, user.ID, txtNeedOnboarding, nil)
		return
	}
	if !h.guard.Allowed(ctx, user.ID) {
		return
	}

	h.states.Set(user.ID, models.StateFocusSelectDuration)
	h.reply(ctx, user.ID, txtChooseDuration, kbDurations)
}

func (h *Handler) selectDuration(ctx context.Context, user models.User, text string) {
	minutes, ok := durationByLabel[text]
	if !ok {
		h.reply(ctx, user.ID, txtPickFromButtons, kbDurations)
		return
	}

	now := h.clock.Now()
	session := models.FocusSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		StartTime: now,
		Duration:  minutes,
	}
	if err := h.sessions.Create(ctx, session); err != nil {
		h.log.Error("failed to create focus session", "user_id", user.ID, "error", err)
		h.reply(ctx, user.ID, txtInternalError, nil)
		return
	}

	tok := h.states.Update(user.ID, models.StateFocusWorking, fsm.Data{
		FocusStart: now,
		Duration:   minutes,
		SessionID:  session.ID,
	})
	h.scheduleCompletion(session, tok)

	end := now.Add(time.Duration(minutes) * time.Minute)
	h.reply(ctx, user.ID, fmt.Sprintf(tplFocusStarted, minutes, end.Format(layoutClock)), nil)
}

// scheduleCompletion arms the one-shot timer ending the session.
func (h *Handler) scheduleCompletion(session models.FocusSession, tok fsm.Token) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}
	d := time.Duration(session.Duration) * time.Minute
	h.timers[session.ID] = h.clock.AfterFunc(d, func() {
		h.completeFocus(session, tok)
	})
}

// completeFocus runs at most once per session. The conversation state is
// cleared only if it is still the one the session started.
func (h *Handler) completeFocus(session models.FocusSession, tok fsm.Token) {
	h.mu.Lock()
	_, armed := h.timers[session.ID]
	delete(h.timers, session.ID)
	h.mu.Unlock()
	if !armed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if _, err := h.sessions.MarkCompleted(ctx, session.ID); err != nil {
		h.log.Error("failed to complete focus session", "session_id", session.ID, "error", err)
	}
	if !h.states.ClearIf(session.UserID, tok) {
		h.log.Debug("focus state changed before completion", "user_id", session.UserID)
	}

	h.reply(ctx, session.UserID, fmt.Sprintf(tplFocusDone, session.Duration), kbFocusDone)
}
