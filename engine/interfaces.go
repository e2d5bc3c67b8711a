package engine

import (
	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/domain/kuhn"
)

// ChipLedger is the chip custody collaborator. Debit fails without
// side effects when the balance is short; Credit never fails.
type ChipLedger interface {
	Deposit(user uuid.UUID, amount uint64) error
	Debit(user uuid.UUID, amount uint64) error
	Credit(user uuid.UUID, amount uint64)
	Balance(user uuid.UUID) uint64
}

// CardSource deals and discloses the hidden cards. Deal is called once
// per accepted game and always produces two distinct ranks; Reveal
// releases the canonical ranks at a terminal outcome; Flip is the
// unpredictable starting-seat coin.
type CardSource interface {
	Deal(gid uint64, playerA, playerB uuid.UUID) error
	Flip() bool
	PlayerCard(gid uint64, requester uuid.UUID) (kuhn.Card, error)
	Reveal(gid uint64) (cardA, cardB kuhn.Card, err error)
}
