// Package handlers routes inbound messages to the onboarding, focus and
// deadline flows.
package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"focus-campus-bot/internal/extractor"
	"focus-campus-bot/internal/fsm"
	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"

	"github.com/jonboulle/clockwork"
)

// sendTimeout bounds deliveries made outside of an inbound request.
const sendTimeout = 10 * time.Second

// Inbound is one user message. Command is the lower-cased command name
// without the slash, empty for plain text and button presses.
type Inbound struct {
	UserID  int64
	Text    string
	Command string
}

// Deps are the collaborators of Handler.
type Deps struct {
	Sender   messages.Sender
	Users    models.UserStore
	Tasks    models.TaskStore
	Sessions models.SessionStore
	States   *fsm.Store
	Pending  *extractor.Pending
	Clock    clockwork.Clock
	Log      *logger.Logger
	// Window is how far ahead /deadlines looks.
	Window time.Duration
}

type Handler struct {
	sender   messages.Sender
	users    models.UserStore
	tasks    models.TaskStore
	sessions models.SessionStore
	states   *fsm.Store
	guard    *fsm.Guard
	pending  *extractor.Pending
	clock    clockwork.Clock
	log      *logger.Logger
	window   time.Duration

	mu      sync.Mutex
	timers  map[string]clockwork.Timer
	stopped bool
}

func New(d Deps) *Handler {
	return &Handler{
		sender:   d.Sender,
		users:    d.Users,
		tasks:    d.Tasks,
		sessions: d.Sessions,
		states:   d.States,
		guard:    fsm.NewGuard(d.States, d.Sender, d.Log),
		pending:  d.Pending,
		clock:    d.Clock,
		log:      d.Log,
		window:   d.Window,
		timers:   make(map[string]clockwork.Timer),
	}
}

// HandleMessage processes one inbound message to completion. Messages of
// the same user must be handed in one at a time.
func (h *Handler) HandleMessage(ctx context.Context, in Inbound) {
	user, err := h.ensureUser(ctx, in.UserID)
	if err != nil {
		h.log.Error("failed to load user", "user_id", in.UserID, "error", err)
		h.reply(ctx, in.UserID, txtInternalError, nil)
		return
	}

	if in.Command != "" {
		h.HandleCommand(ctx, user, in.Command)
		return
	}
	h.HandleText(ctx, user, strings.TrimSpace(in.Text))
}

// Stop cancels pending focus timers. Sessions in flight stay incomplete.
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	for id, t := range h.timers {
		t.Stop()
		delete(h.timers, id)
	}
}

// ensureUser returns the user, creating it on first contact.
func (h *Handler) ensureUser(ctx context.Context, id int64) (models.User, error) {
	u, err := h.users.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, err
	}

	u, err = h.users.Create(ctx, models.User{ID: id, CreatedAt: h.clock.Now()})
	if errors.Is(err, models.ErrAlreadyExists) {
		return h.users.Get(ctx, id)
	}
	return u, err
}

func (h *Handler) reply(ctx context.Context, userID int64, text string, kb messages.Keyboard) {
	if err := h.sender.Send(ctx, userID, text, kb); err != nil {
		h.log.Error("failed to send reply", "user_id", userID, "error", err)
	}
}
