package handlers

import (
	"context"
	"fmt"
	"strings"

	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"
)

var roleByLabel = map[string]models.Role{
	btnFreshman: models.RoleFreshman,
	btnBachelor: models.RoleBachelor,
	btnMaster:   models.RoleMaster,
	btnPhD:      models.RolePhD,
}

var (
	kbUniversity = messages.Keyboard{{"МГУ", "МФТИ"}, {"ВШЭ", "МГТУ"}, {"Другой вуз"}}
	kbRole       = messages.Keyboard{{btnFreshman}, {btnBachelor, btnMaster}, {btnPhD}}
	kbMainMenu   = messages.Keyboard{{btnAddDeadline}, {btnStartFocusSession, btnProgress}}
	kbAfterSetup = messages.Keyboard{{btnAddTask}, {btnStartFocus, btnStats}}
)

// ---------- /start ----------
func (h *Handler) handleStart(ctx context.Context, user models.User) {
	// re-entering onboarding is always allowed, any other flow is guarded
	if st := h.states.State(user.ID); st != models.StateIdle && !st.IsOnboarding() {
		if !h.guard.Allowed(ctx, user.ID) {
			return
		}
	}

	if user.OnboardingCompleted {
		h.reply(ctx, user.ID, txtWelcomeBack, kbMainMenu)
		return
	}

	h.states.Set(user.ID, models.StateOnboardingStart)
	h.reply(ctx, user.ID, txtWelcome, kbUniversity)
}

// onboardingStep stores the answer for the current step and moves on.
func (h *Handler) onboardingStep(ctx context.Context, user models.User, st models.State, text string) {
	var (
		next   models.State
		prompt string
		kb     messages.Keyboard
	)

	switch st {
	case models.StateOnboardingStart:
		user.University = text
		next, prompt = models.StateOnboardingGroup, txtAskGroup
	case models.StateOnboardingGroup:
		user.Group = text
		next, prompt, kb = models.StateOnboardingRole, txtAskRole, kbRole
	case models.StateOnboardingRole:
		role, ok := roleByLabel[text]
		if !ok {
			role = models.RoleBachelor
		}
		user.Role = role
		next, prompt = models.StateOnboardingCalendar, txtAskCalendar
	case models.StateOnboardingCalendar:
		if !strings.EqualFold(text, skipKeyword) {
			user.CalendarURL = text
		}
		next, prompt = models.StateOnboardingTags, txtAskTags
	case models.StateOnboardingTags:
		user.Tags = parseTags(text)
		user.OnboardingCompleted = true
		next, prompt, kb = models.StateIdle, onboardingSummary(user), kbAfterSetup
	case models.StateIdle, models.StateFocusSelectDuration, models.StateFocusWorking,
		models.StateFocusBreak, models.StateFocusLongBreak:
		return
	}

	if err := h.users.Update(ctx, user); err != nil {
		h.log.Error("failed to save onboarding step", "user_id", user.ID, "state", st.String(), "error", err)
		h.reply(ctx, user.ID, txtInternalError, nil)
		return
	}

	if next == models.StateIdle {
		h.states.Clear(user.ID)
		h.log.Info("onboarding completed", "user_id", user.ID)
	} else {
		h.states.Set(user.ID, next)
	}
	h.reply(ctx, user.ID, prompt, kb)
}

// parseTags splits a comma separated list, dropping empty items.
func parseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func onboardingSummary(u models.User) string {
	tags := txtNoTags
	if len(u.Tags) > 0 {
		tags = messages.Escape(strings.Join(u.Tags, ", "))
	}
	return fmt.Sprintf(tplOnboardingDone, orNotSet(u.University), orNotSet(u.Group), u.Role.Title(), tags)
}
