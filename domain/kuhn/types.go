package kuhn

import (
	"time"

	"github.com/google/uuid"
)

// PlayerAction is one of the values a hand's action slots can hold.
// Empty marks a slot that has not been played yet.
type PlayerAction uint8

const (
	Empty PlayerAction = iota
	Check
	Bet
	Fold
	Call
)

// AllActions lists every PlayerAction including Empty, in slot-value order.
var AllActions = []PlayerAction{Empty, Check, Bet, Fold, Call}

func (a PlayerAction) String() string {
	switch a {
	case Empty:
		return "EMPTY"
	case Check:
		return "CHECK"
	case Bet:
		return "BET"
	case Fold:
		return "FOLD"
	case Call:
		return "CALL"
	default:
		return "UNKNOWN"
	}
}

// ActionFromName is the inverse of PlayerAction.String. Unknown names map to Empty.
func ActionFromName(name string) PlayerAction {
	switch name {
	case "CHECK":
		return Check
	case "BET":
		return Bet
	case "FOLD":
		return Fold
	case "CALL":
		return Call
	default:
		return Empty
	}
}

// Outcome is the terminal result of a game. A game is in progress while
// its outcome is NoOutcome; every other value is final.
type Outcome uint8

const (
	NoOutcome Outcome = iota
	Showdown
	FoldOut
	Timeout
	Cancel
	Resign
)

func (o Outcome) String() string {
	switch o {
	case NoOutcome:
		return "NONE"
	case Showdown:
		return "SHOWDOWN"
	case FoldOut:
		return "FOLD"
	case Timeout:
		return "TIMEOUT"
	case Cancel:
		return "CANCEL"
	case Resign:
		return "RESIGNATION"
	default:
		return "UNKNOWN"
	}
}

// Card is a rank in the three-card Kuhn deck. NoCard marks an undealt or
// still-hidden card. Ranks order Jack < Queen < King and the two dealt
// cards are always distinct, so showdown comparison is total.
type Card uint8

const (
	NoCard Card = iota
	Jack
	Queen
	King
)

// Deck is the full three-card Kuhn deck.
var Deck = [3]Card{Jack, Queen, King}

// Letter returns the single-letter display form of the Card.
func (c Card) Letter() string {
	switch c {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "X"
	}
}

func (c Card) String() string {
	return c.Letter()
}

// Beats reports whether c outranks other.
func (c Card) Beats(other Card) bool {
	return c > other
}

// Game is the complete record of a single Kuhn Poker match. Ids start at
// 1 and are never reused. Outcome and Winner are written exactly once;
// after that no scoring field changes again. Pot only grows while the
// outcome is undecided and keeps its final value as a record after
// settlement, the chips themselves move through the ledger.
type Game struct {
	GID           uint64
	RematchingGID uint64 // gid of the finished game this one is a rematch of

	PlayerA uuid.UUID
	PlayerB uuid.UUID // uuid.Nil until a second player joins

	Accepted       bool
	Pot            uint64
	StartingPlayer uuid.UUID
	ActivePlayer   uuid.UUID
	Deadline       time.Time

	Action1 PlayerAction
	Action2 PlayerAction
	Action3 PlayerAction

	CardA Card // NoCard until revealed
	CardB Card

	Outcome    Outcome
	Winner     uuid.UUID
	RematchGID uint64 // gid of the game created as this game's rematch
}

// HasPlayer reports whether id is seated in the game.
func (g *Game) HasPlayer(id uuid.UUID) bool {
	return id != uuid.Nil && (id == g.PlayerA || id == g.PlayerB)
}

// Opponent returns the other seat's player, or uuid.Nil if id is not seated.
func (g *Game) Opponent(id uuid.UUID) uuid.UUID {
	switch id {
	case g.PlayerA:
		return g.PlayerB
	case g.PlayerB:
		return g.PlayerA
	default:
		return uuid.Nil
	}
}

// Ended reports whether a terminal outcome has been recorded.
func (g *Game) Ended() bool {
	return g.Outcome != NoOutcome
}

// slot returns the 1-based index of the next unplayed action slot, or 0
// if all three have been filled.
func (g *Game) slot() int {
	switch {
	case g.Action1 == Empty:
		return 1
	case g.Action2 == Empty:
		return 2
	case g.Action3 == Empty:
		return 3
	default:
		return 0
	}
}

// RecordAction writes a into the next unplayed slot.
func (g *Game) RecordAction(a PlayerAction) {
	switch g.slot() {
	case 1:
		g.Action1 = a
	case 2:
		g.Action2 = a
	case 3:
		g.Action3 = a
	}
}
