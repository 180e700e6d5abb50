package handlers

import (
	"context"
	"testing"

	"focus-campus-bot/internal/fsm"
	"focus-campus-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_FullFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.command(1, "start")
	assert.Equal(t, models.StateOnboardingStart, e.states.State(1))
	assert.Equal(t, txtWelcome, e.rec.last().text)
	assert.Equal(t, kbUniversity, e.rec.last().kb)

	steps := []struct {
		answer string
		state  models.State
		prompt string
	}{
		{"МФТИ", models.StateOnboardingGroup, txtAskGroup},
		{"Б05-123", models.StateOnboardingRole, txtAskRole},
		{btnMaster, models.StateOnboardingCalendar, txtAskCalendar},
		{"Пропустить", models.StateOnboardingTags, txtAskTags},
	}
	for _, s := range steps {
		e.text(1, s.answer)
		assert.Equal(t, s.state, e.states.State(1), s.answer)
		assert.Equal(t, s.prompt, e.rec.last().text, s.answer)
	}

	e.text(1, " математика, , физика ,английский ")
	assert.Equal(t, models.StateIdle, e.states.State(1))

	u, err := e.db.Users.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "МФТИ", u.University)
	assert.Equal(t, "Б05-123", u.Group)
	assert.Equal(t, models.RoleMaster, u.Role)
	assert.Empty(t, u.CalendarURL)
	assert.Equal(t, []string{"математика", "физика", "английский"}, u.Tags)
	assert.True(t, u.OnboardingCompleted)

	last := e.rec.last()
	assert.Equal(t, onboardingSummary(u), last.text)
	assert.Contains(t, last.text, "МФТИ")
	assert.Contains(t, last.text, "магистр")
	assert.Equal(t, kbAfterSetup, last.kb)
}

func TestOnboarding_UnknownRoleAndCalendar(t *testing.T) {
	e := newEnv(t)

	e.command(1, "start")
	e.text(1, "ВШЭ")
	e.text(1, "2 курс")
	e.text(1, "кто-то еще")
	e.text(1, "https://example.com/cal.ics")
	e.text(1, "")
	assert.Equal(t, models.StateOnboardingTags, e.states.State(1), "empty text is ignored")
	e.text(1, ",")

	u, err := e.db.Users.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBachelor, u.Role)
	assert.Equal(t, "https://example.com/cal.ics", u.CalendarURL)
	assert.Empty(t, u.Tags)
	assert.True(t, u.OnboardingCompleted)
}

func TestStart_CompletedUserDoesNotReenter(t *testing.T) {
	e := newEnv(t)
	e.onboard(t, 1)

	for i := 0; i < 2; i++ {
		e.command(1, "start")
		assert.Equal(t, models.StateIdle, e.states.State(1))
		assert.Equal(t, txtWelcomeBack, e.rec.last().text)
		assert.Equal(t, kbMainMenu, e.rec.last().kb)
	}

	u, err := e.db.Users.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, u.OnboardingCompleted)
}

func TestStart_ReentryInsideOnboarding(t *testing.T) {
	e := newEnv(t)

	e.command(1, "start")
	e.text(1, "МГУ")
	e.text(1, "101")
	require.Equal(t, models.StateOnboardingRole, e.states.State(1))

	e.command(1, "start")
	assert.Equal(t, models.StateOnboardingStart, e.states.State(1))
	assert.Equal(t, txtWelcome, e.rec.last().text)
	assert.NotContains(t, e.rec.texts(), fsm.DeniedMessage)
}

func TestStart_GuardedOutsideOnboarding(t *testing.T) {
	e := newEnv(t)
	e.command(1, "help")

	tok := e.states.Update(1, models.StateFocusWorking, fsm.Data{Duration: 25})
	e.command(1, "start")

	st, data, after := e.states.Get(1)
	assert.Equal(t, models.StateFocusWorking, st)
	assert.Equal(t, 25, data.Duration)
	assert.Equal(t, tok, after)
	assert.Equal(t, fsm.DeniedMessage, e.rec.last().text)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, parseTags(" a ,b c,, "))
	assert.Empty(t, parseTags(""))
}
