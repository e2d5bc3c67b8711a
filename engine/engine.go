// Package engine drives Kuhn Poker sessions: matchmaking, the per-game
// state machine, pot settlement and the rematch handshake. Every
// state-changing operation runs to completion under one lock, the
// single-writer model of a serialized ledger: a caller either finds the
// world ready for its action or fails immediately with one of the named
// errors from domain/kuhn. Waiting states (an open game, a pending
// rematch offer) are data, never suspended execution, and timeouts are
// resolved only when a caller asks, never by a background timer.
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/directory"
	"github.com/tablestakes/kuhn/domain/kuhn"
	"github.com/tablestakes/kuhn/events"
)

// Config carries the table constants. The turn timeout is a
// configuration choice, not a protocol invariant.
type Config struct {
	Ante        uint64
	TurnTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Ante:        1,
		TurnTimeout: 2 * time.Minute,
	}
}

// Engine owns every Game record and coordinates the collaborators.
type Engine struct {
	mu   sync.Mutex
	cfg  Config
	now  func() time.Time
	sink events.Sink

	ledger ChipLedger
	cards  CardSource
	dir    *directory.Directory

	games   map[uint64]*kuhn.Game
	lastGID uint64
}

func New(cfg Config, ledger ChipLedger, cards CardSource, dir *directory.Directory, sink events.Sink) *Engine {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &Engine{
		cfg:    cfg,
		now:    time.Now,
		sink:   sink,
		ledger: ledger,
		cards:  cards,
		dir:    dir,
		games:  make(map[uint64]*kuhn.Game),
	}
}

// DealMeIn credits chips to the user's bankroll.
func (e *Engine) DealMeIn(user uuid.UUID, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.Deposit(user, amount); err != nil {
		return err
	}
	e.sink.Emit(events.Event{Kind: events.PlayerDealtIn, Actor: user, Amount: amount})
	return nil
}

// currentGame returns the game the user's directory index points at,
// nil if they have none.
func (e *Engine) currentGame(user uuid.UUID) *kuhn.Game {
	gid := e.dir.UserGame(user)
	if gid == 0 {
		return nil
	}
	return e.games[gid]
}

// settle records the terminal outcome and winner, reveals the cards and
// pays the pot out in full. The one write that makes a game immutable.
func (e *Engine) settle(g *kuhn.Game, winner uuid.UUID, outcome kuhn.Outcome, kind events.Kind) {
	if g.Accepted {
		g.CardA, g.CardB, _ = e.cards.Reveal(g.GID)
	}
	g.Outcome = outcome
	g.Winner = winner
	e.ledger.Credit(winner, g.Pot)
	e.sink.Emit(events.Event{Kind: kind, Actor: winner, GID: g.GID, Amount: g.Pot})
}

// cancel withdraws an unaccepted game: the lone player's ante comes
// back, the outcome is Cancel with no winner, and the game leaves every
// "current" index while staying in the record map forever.
func (e *Engine) cancel(g *kuhn.Game, user uuid.UUID) {
	g.Outcome = kuhn.Cancel
	e.ledger.Credit(user, g.Pot)
	e.dir.ClearOpen(g.GID)
	e.dir.RemoveUserGame(user, g.GID)
	e.sink.Emit(events.Event{Kind: events.GameCancelled, Actor: user, GID: g.GID})
}
