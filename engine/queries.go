package engine

import (
	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/domain/kuhn"
)

// UserGameState is the per-user read model the original system polls:
// which game the user is on, which one counts as their active table,
// and where their opponent has gone.
type UserGameState struct {
	// ActiveGID is the user's current table: their own game once it is
	// accepted, or the finished game a pending rematch offer hangs off.
	ActiveGID uint64
	// RematchGID is the rematch linked to the active game, 0 if none.
	RematchGID uint64
	// SelfGID is the user's most recent created or joined game,
	// including a pending offer.
	SelfGID uint64
	// OpponentGID is where the active game's opponent currently is.
	OpponentGID uint64
}

// Game returns a snapshot of the game record.
func (e *Engine) Game(gid uint64) (kuhn.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.games[gid]
	if !ok {
		return kuhn.Game{}, kuhn.ErrInvalidGame
	}
	return *g, nil
}

// OpenGameID returns the gid of the globally open game, 0 if none.
func (e *Engine) OpenGameID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dir.OpenGID()
}

// Chips returns the user's spendable balance.
func (e *Engine) Chips(user uuid.UUID) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Balance(user)
}

// UserGames returns snapshots of the user's played games in insertion
// order.
func (e *Engine) UserGames(user uuid.UUID) []kuhn.Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshots(e.dir.UserGames(user))
}

// PairGames returns the games played between a and b in insertion
// order; both argument orders yield the same list.
func (e *Engine) PairGames(a, b uuid.UUID) []kuhn.Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshots(e.dir.PairGames(a, b))
}

func (e *Engine) snapshots(gids []uint64) []kuhn.Game {
	games := make([]kuhn.Game, 0, len(gids))
	for _, gid := range gids {
		if g, ok := e.games[gid]; ok {
			games = append(games, *g)
		}
	}
	return games
}

// UserGameState derives the read model for the user.
func (e *Engine) UserGameState(user uuid.UUID) UserGameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s UserGameState
	s.SelfGID = e.dir.UserGame(user)
	if s.SelfGID == 0 {
		return s
	}
	self := e.games[s.SelfGID]
	switch {
	case self.Accepted:
		s.ActiveGID = s.SelfGID
	case self.RematchingGID != 0:
		s.ActiveGID = self.RematchingGID
	}
	if s.ActiveGID == 0 {
		return s
	}
	active := e.games[s.ActiveGID]
	s.RematchGID = active.RematchGID
	if opponent := active.Opponent(user); opponent != uuid.Nil {
		s.OpponentGID = e.dir.UserGame(opponent)
	}
	return s
}

// Permission is the capability presented with a card disclosure query.
// The issuer must be the caller themselves; the engine never discloses
// an opponent's card through this path before reveal.
type Permission struct {
	Issuer uuid.UUID
}

// GameCard returns the caller's own hidden card for the game.
func (e *Engine) GameCard(caller uuid.UUID, perm Permission, gid uint64) (kuhn.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.games[gid]
	if !ok {
		return kuhn.NoCard, kuhn.ErrInvalidGame
	}
	if !g.HasPlayer(caller) {
		return kuhn.NoCard, kuhn.ErrNotPlayerInGame
	}
	if perm.Issuer != caller {
		return kuhn.NoCard, kuhn.ErrSignerNotMessageSender
	}
	return e.cards.PlayerCard(gid, caller)
}
