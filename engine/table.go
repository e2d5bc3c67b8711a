package engine

import (
	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/domain/kuhn"
	"github.com/tablestakes/kuhn/events"
)

// PerformAction plays one action into the user's active hand. All
// preconditions are checked before anything changes, in this order:
// the user must have a game, the game must be accepted, not ended, it
// must be the user's turn, the action must be legal for the current
// slot, and a betting action must be affordable. A bet debits the chip
// and grows the pot before terminal conditions are evaluated.
func (e *Engine) PerformAction(user uuid.UUID, action kuhn.PlayerAction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.currentGame(user)
	if g == nil {
		return kuhn.ErrNotInGame
	}
	if !g.Accepted {
		return kuhn.ErrGameNotStarted
	}
	if g.Ended() {
		return kuhn.ErrGameEnded
	}
	if user != g.ActivePlayer {
		return kuhn.ErrNotYourTurn
	}
	step, err := kuhn.NextStep(g.Action1, g.Action2, action)
	if err != nil {
		return err
	}
	if step.TakesBet {
		if err := e.ledger.Debit(user, 1); err != nil {
			return kuhn.ErrNotEnoughChips
		}
		g.Pot++
	}

	g.RecordAction(action)
	e.sink.Emit(events.Event{Kind: events.PerformedGameAction, Actor: user, GID: g.GID, Action: action})
	if step.TakesBet {
		e.sink.Emit(events.Event{Kind: events.ChipTaken, Actor: user, GID: g.GID})
	}

	switch {
	case step.Showdown:
		e.settleShowdown(g)
	case step.Fold:
		e.settle(g, g.Opponent(user), kuhn.FoldOut, events.WonByFold)
	default:
		g.ActivePlayer = g.Opponent(user)
		g.Deadline = e.now().Add(e.cfg.TurnTimeout)
	}
	return nil
}

// settleShowdown compares the revealed ranks; they are always distinct
// so the higher card decides without ties.
func (e *Engine) settleShowdown(g *kuhn.Game) {
	cardA, cardB, _ := e.cards.Reveal(g.GID)
	winner := g.PlayerB
	if cardA.Beats(cardB) {
		winner = g.PlayerA
	}
	e.settle(g, winner, kuhn.Showdown, events.WonByShowdown)
}

// TimeoutOpponent lets the waiting player claim the pot once the active
// player's deadline has passed. Resolution is poll-based: nothing fires
// when a deadline expires, someone has to ask.
func (e *Engine) TimeoutOpponent(user uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.currentGame(user)
	if g == nil {
		return kuhn.ErrNotInGame
	}
	if !g.Accepted {
		return kuhn.ErrGameNotStarted
	}
	if g.Ended() {
		return kuhn.ErrGameEnded
	}
	if user == g.ActivePlayer {
		return kuhn.ErrItsYourTurn
	}
	if e.now().Before(g.Deadline) {
		return kuhn.ErrOpponentStillHasTime
	}
	e.settle(g, user, kuhn.Timeout, events.WonByTimeout)
	return nil
}

// Resign concedes the hand. Either player may resign at any point
// before the outcome is decided, on their turn or not.
func (e *Engine) Resign(user uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.currentGame(user)
	if g == nil {
		return kuhn.ErrNotInGame
	}
	if !g.Accepted {
		return kuhn.ErrGameNotStarted
	}
	if g.Ended() {
		return kuhn.ErrGameEnded
	}
	e.settle(g, g.Opponent(user), kuhn.Resign, events.WonByResignation)
	return nil
}
