package fsm

import (
	"context"
	"slices"

	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/models"
)

// DeniedMessage is sent when an action is refused because a flow is active.
const DeniedMessage = "⚠️ Пожалуйста, завершите текущий шаг и воспользуйтесь кнопками, " +
	"которые я вам предлагаю на экране."

// StateReader is the part of Store the guard needs.
type StateReader interface {
	State(userID int64) models.State
}

// Guard is the single place deciding whether an action may run while a flow
// is active. It never changes state.
type Guard struct {
	states StateReader
	sender messages.Sender
	log    *logger.Logger
}

func NewGuard(states StateReader, sender messages.Sender, log *logger.Logger) *Guard {
	return &Guard{states: states, sender: sender, log: log}
}

// Allowed reports whether the user may proceed. Idle users always may; a
// user inside a flow may only when the current state is listed in allowed.
// On refusal exactly one denial notice is delivered.
func (g *Guard) Allowed(ctx context.Context, userID int64, allowed ...models.State) bool {
	current := g.states.State(userID)
	if current == models.StateIdle {
		return true
	}
	if slices.Contains(allowed, current) {
		return true
	}

	if err := g.sender.Send(ctx, userID, DeniedMessage, nil); err != nil {
		g.log.Error("failed to send denial", "user_id", userID, "error", err)
	}
	return false
}
