// Package events carries the engine's outcome notifications. Events are
// fire-and-observe: sinks exist for observability only and no engine
// logic depends on delivery.
package events

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/domain/kuhn"
)

type Kind string

const (
	GameCreated         Kind = "GameCreated"
	GameJoined          Kind = "GameJoined"
	GameCancelled       Kind = "GameCancelled"
	PlayerDealtIn       Kind = "PlayerDealtIn"
	PerformedGameAction Kind = "PerformedGameAction"
	ChipTaken           Kind = "ChipTaken"
	WonByShowdown       Kind = "WonByShowdown"
	WonByFold           Kind = "WonByFold"
	WonByTimeout        Kind = "WonByTimeout"
	WonByResignation    Kind = "WonByResignation"
	RematchCreated      Kind = "RematchCreated"
	RematchAccepted     Kind = "RematchAccepted"
)

// Event is one notification. Actor is the user the event is about: the
// player who acted, or the winner for the WonBy kinds. Amount carries
// the deposit for PlayerDealtIn and the pot for the WonBy kinds.
type Event struct {
	Kind   Kind
	Actor  uuid.UUID
	GID    uint64
	Amount uint64
	Action kuhn.PlayerAction // set for PerformedGameAction
}

// Sink receives engine events.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// SlogSink logs every event through a slog.Logger.
type SlogSink struct {
	Log *slog.Logger
}

func (s SlogSink) Emit(e Event) {
	attrs := []any{
		slog.String("actor", e.Actor.String()),
		slog.Uint64("gid", e.GID),
	}
	switch e.Kind {
	case PlayerDealtIn, WonByShowdown, WonByFold, WonByTimeout, WonByResignation:
		attrs = append(attrs, slog.Uint64("amount", e.Amount))
	case PerformedGameAction:
		attrs = append(attrs, slog.String("action", e.Action.String()))
	}
	s.Log.Info(string(e.Kind), attrs...)
}
