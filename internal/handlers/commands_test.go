package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"focus-campus-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowSchedule(t *testing.T) {
	e := newEnv(t)

	e.command(1, "schedule")
	assert.Equal(t, txtNeedOnboarding, e.rec.last().text)

	e.onboard(t, 1)
	e.command(1, "schedule")
	want := fmt.Sprintf(tplSchedule, "МФТИ", "Б05-123", "математика, физика", txtCalendarOff)
	assert.Equal(t, want, e.rec.last().text)
	assert.Equal(t, btnMyDeadlines, e.rec.last().kb[0][0])
}

func TestStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.onboard(t, 1)

	tasks := []models.Task{
		{ID: "a", UserID: 1, Title: "a", Deadline: epoch.Add(time.Hour)},
		{ID: "b", UserID: 1, Title: "b", Deadline: epoch.Add(-time.Hour)},
		{ID: "c", UserID: 1, Title: "c", Deadline: epoch.Add(time.Hour), Status: models.StatusCompleted},
		{ID: "d", UserID: 2, Title: "d", Deadline: epoch.Add(time.Hour)},
	}
	for _, task := range tasks {
		require.NoError(t, e.db.Tasks.Create(ctx, task))
	}
	sessions := []models.FocusSession{
		{ID: "s1", UserID: 1, StartTime: epoch, Duration: 25},
		{ID: "s2", UserID: 1, StartTime: epoch, Duration: 50},
		{ID: "s3", UserID: 1, StartTime: epoch, Duration: 15},
	}
	for _, s := range sessions {
		require.NoError(t, e.db.Sessions.Create(ctx, s))
	}
	for _, id := range []string{"s1", "s2"} {
		_, err := e.db.Sessions.MarkCompleted(ctx, id)
		require.NoError(t, err)
	}

	e.command(1, "stats")
	assert.Equal(t, fmt.Sprintf(tplStats, 1, 2, 75, 1), e.rec.last().text)

	e.text(1, btnStats)
	assert.Equal(t, fmt.Sprintf(tplStats, 1, 2, 75, 1), e.rec.last().text)
}

func TestHelpNeverGuarded(t *testing.T) {
	e := newEnv(t)

	e.command(1, "start")
	e.command(1, "help")
	assert.Equal(t, txtHelp, e.rec.last().text)
	assert.Equal(t, models.StateOnboardingStart, e.states.State(1))
}
