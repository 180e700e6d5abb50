package handlers

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"focus-campus-bot/internal/extractor"
	"focus-campus-bot/internal/fsm"
	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"
	"focus-campus-bot/internal/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	userID int64
	text   string
	kb     messages.Keyboard
}

type recorder struct {
	mu   sync.Mutex
	msgs []sent
}

func (r *recorder) Send(_ context.Context, userID int64, text string, kb messages.Keyboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, sent{userID: userID, text: text, kb: kb})
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func (r *recorder) last() sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return sent{}
	}
	return r.msgs[len(r.msgs)-1]
}

func (r *recorder) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		res = append(res, m.text)
	}
	return res
}

var epoch = time.Date(2025, 2, 10, 10, 0, 0, 0, time.Local)

type testEnv struct {
	h       *Handler
	db      *storage.DB
	rec     *recorder
	clock   *clockwork.FakeClock
	states  *fsm.Store
	pending *extractor.Pending
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "bot.db"), logger.Nop())
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(epoch)
	rec := &recorder{}
	states := fsm.NewStore()
	pending := extractor.NewPending(clock, 30*time.Minute)

	h := New(Deps{
		Sender:   rec,
		Users:    db.Users,
		Tasks:    db.Tasks,
		Sessions: db.Sessions,
		States:   states,
		Pending:  pending,
		Clock:    clock,
		Log:      logger.Nop(),
		Window:   30 * 24 * time.Hour,
	})
	t.Cleanup(func() {
		h.Stop()
		db.Close()
	})

	return &testEnv{h: h, db: db, rec: rec, clock: clock, states: states, pending: pending}
}

func (e *testEnv) text(userID int64, text string) {
	e.h.HandleMessage(context.Background(), Inbound{UserID: userID, Text: text})
}

func (e *testEnv) command(userID int64, cmd string) {
	e.h.HandleMessage(context.Background(), Inbound{UserID: userID, Text: "/" + cmd, Command: cmd})
}

func (e *testEnv) onboard(t *testing.T, userID int64) {
	t.Helper()
	e.command(userID, "start")
	for _, answer := range []string{"МФТИ", "Б05-123", btnMaster, "пропустить", "математика, физика"} {
		e.text(userID, answer)
	}
	u, err := e.db.Users.Get(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, u.OnboardingCompleted)
	require.Equal(t, models.StateIdle, e.states.State(userID))
}

func TestHandleMessage_CreatesUserOnFirstContact(t *testing.T) {
	e := newEnv(t)

	e.command(7, "help")

	u, err := e.db.Users.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, epoch.Unix(), u.CreatedAt.Unix())
	assert.False(t, u.OnboardingCompleted)
	assert.Equal(t, txtHelp, e.rec.last().text)
}

func TestHandleCommand_Unknown(t *testing.T) {
	e := newEnv(t)
	e.command(7, "dance")
	assert.Equal(t, txtUnknownCommand, e.rec.last().text)
}

func TestStop_DropsPendingTimers(t *testing.T) {
	e := newEnv(t)
	e.onboard(t, 1)
	e.command(1, "focus")
	e.text(1, btnFocus15)
	before := e.rec.count()

	e.h.Stop()
	e.clock.Advance(time.Hour)

	sessions, err := e.db.Sessions.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Completed)
	assert.Equal(t, before, e.rec.count())
}
