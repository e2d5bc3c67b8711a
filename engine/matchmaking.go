package engine

import (
	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/domain/kuhn"
	"github.com/tablestakes/kuhn/events"
)

// FindGame seats the user at a table. With no open game it creates one
// and publishes it; with an open game it joins as playerB, which
// accepts the game, picks the starting seat and deals the cards.
// Switching tables costs the old hand: an accepted unfinished game is
// force-resigned, an unaccepted one (fresh search or pending rematch
// offer) is cancelled with a refund, before the new seat is taken.
func (e *Engine) FindGame(user uuid.UUID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ledger.Balance(user) < e.cfg.Ante {
		return 0, kuhn.ErrNotEnoughChips
	}
	openGID := e.dir.OpenGID()
	if openGID != 0 && e.games[openGID].PlayerA == user {
		return 0, kuhn.ErrInvalidPlayerB
	}

	e.leaveCurrentGame(user)

	if openGID == 0 {
		return e.createGame(user)
	}
	return e.joinGame(e.games[openGID], user)
}

// leaveCurrentGame resolves whatever game the user is still attached
// to. Called only after the ante has been confirmed affordable.
func (e *Engine) leaveCurrentGame(user uuid.UUID) {
	g := e.currentGame(user)
	if g == nil || g.Ended() {
		return
	}
	if !g.Accepted {
		e.cancel(g, user)
		return
	}
	e.settle(g, g.Opponent(user), kuhn.Resign, events.WonByResignation)
}

func (e *Engine) createGame(user uuid.UUID) (uint64, error) {
	if err := e.ledger.Debit(user, e.cfg.Ante); err != nil {
		return 0, kuhn.ErrNotEnoughChips
	}
	e.lastGID++
	g := &kuhn.Game{
		GID:     e.lastGID,
		PlayerA: user,
		Pot:     e.cfg.Ante,
		// provisional; the real starting seat is drawn when a second
		// player accepts
		StartingPlayer: user,
		ActivePlayer:   user,
	}
	e.games[g.GID] = g
	e.dir.SetUserGame(user, g.GID)
	e.dir.AppendUserGame(user, g.GID)
	e.dir.PublishOpen(g.GID)
	e.sink.Emit(events.Event{Kind: events.GameCreated, Actor: user, GID: g.GID})
	return g.GID, nil
}

func (e *Engine) joinGame(g *kuhn.Game, user uuid.UUID) (uint64, error) {
	if err := e.seatPlayerB(g, user); err != nil {
		return 0, err
	}
	e.dir.ClearOpen(g.GID)
	e.dir.AppendUserGame(user, g.GID)
	e.sink.Emit(events.Event{Kind: events.GameJoined, Actor: user, GID: g.GID})
	return g.GID, nil
}

// seatPlayerB fills the second seat: ante taken, game accepted,
// starting seat drawn by coin flip, cards dealt, first deadline armed.
// Shared by the open-game join and the rematch accept.
func (e *Engine) seatPlayerB(g *kuhn.Game, user uuid.UUID) error {
	if err := e.ledger.Debit(user, e.cfg.Ante); err != nil {
		return kuhn.ErrNotEnoughChips
	}
	g.PlayerB = user
	g.Pot += e.cfg.Ante
	g.Accepted = true
	if e.cards.Flip() {
		g.StartingPlayer = g.PlayerB
	} else {
		g.StartingPlayer = g.PlayerA
	}
	g.ActivePlayer = g.StartingPlayer
	g.Deadline = e.now().Add(e.cfg.TurnTimeout)
	if err := e.cards.Deal(g.GID, g.PlayerA, g.PlayerB); err != nil {
		return err
	}
	e.dir.SetUserGame(user, g.GID)
	e.dir.AppendPairGame(g.PlayerA, g.PlayerB, g.GID)
	return nil
}

// Rematch links a fresh game onto a finished one. The first caller
// creates the offer (ante paid, opponent's seat reserved, not published
// as an open game); the former opponent's own Rematch call accepts it.
func (e *Engine) Rematch(user uuid.UUID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.currentGame(user)
	if g == nil {
		return 0, kuhn.ErrNotInGame
	}
	if !g.Ended() {
		// covers an in-progress game, the user's own pending offer and
		// an already accepted rematch
		return 0, kuhn.ErrGameNotEnded
	}

	if g.RematchGID != 0 {
		return e.acceptRematch(g, user)
	}

	opponent := g.Opponent(user)
	if e.dir.UserGame(opponent) != g.GID {
		return 0, kuhn.ErrOpponentHasLeft
	}
	if err := e.ledger.Debit(user, e.cfg.Ante); err != nil {
		return 0, kuhn.ErrNotEnoughChips
	}
	e.lastGID++
	rg := &kuhn.Game{
		GID:            e.lastGID,
		RematchingGID:  g.GID,
		PlayerA:        user,
		PlayerB:        opponent,
		Pot:            e.cfg.Ante,
		StartingPlayer: user,
		ActivePlayer:   user,
	}
	e.games[rg.GID] = rg
	g.RematchGID = rg.GID
	e.dir.SetUserGame(user, rg.GID)
	e.sink.Emit(events.Event{Kind: events.RematchCreated, Actor: user, GID: rg.GID})
	return rg.GID, nil
}

// acceptRematch joins the pending offer hanging off the caller's
// finished game. Only now do both players' played-games lists gain the
// new gid; a pending offer is never listed.
func (e *Engine) acceptRematch(old *kuhn.Game, user uuid.UUID) (uint64, error) {
	rg := e.games[old.RematchGID]
	if rg.Outcome == kuhn.Cancel {
		return 0, kuhn.ErrRematchCancelled
	}
	if err := e.seatPlayerB(rg, user); err != nil {
		return 0, err
	}
	e.dir.AppendUserGame(rg.PlayerA, rg.GID)
	e.dir.AppendUserGame(user, rg.GID)
	e.sink.Emit(events.Event{Kind: events.RematchAccepted, Actor: user, GID: rg.GID})
	return rg.GID, nil
}

// CancelSearch withdraws the user's unaccepted game, whether a fresh
// open-game search or a pending rematch offer, refunding the ante.
func (e *Engine) CancelSearch(user uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.currentGame(user)
	if g == nil {
		return kuhn.ErrNotInGame
	}
	if g.Accepted {
		return kuhn.ErrGameStarted
	}
	if g.Ended() {
		// stale pointer at an already cancelled search
		return kuhn.ErrNotInGame
	}
	e.cancel(g, user)
	return nil
}
