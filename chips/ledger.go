// Package chips implements chip custody: a per-user balance ledger
// whose only mutations are Deposit, Debit and Credit. No operation can
// drive a balance negative, and every pot movement in the engine is
// backed by exactly one matching ledger call.
package chips

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrInsufficientFunds is returned by Debit when the balance cannot
// cover the amount. The engine surfaces it as kuhn.ErrNotEnoughChips.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNonPositiveDeposit is returned by Deposit for a zero amount.
var ErrNonPositiveDeposit = errors.New("deposit must be positive")

// Ledger tracks spendable chip balances. Safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	balances map[uuid.UUID]uint64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[uuid.UUID]uint64)}
}

// Deposit credits amount to user's balance. The amount must be positive.
func (l *Ledger) Deposit(user uuid.UUID, amount uint64) error {
	if amount == 0 {
		return ErrNonPositiveDeposit
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[user] += amount
	return nil
}

// Debit atomically removes amount from user's balance, failing with
// ErrInsufficientFunds (and changing nothing) if the balance is short.
func (l *Ledger) Debit(user uuid.UUID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[user] < amount {
		return ErrInsufficientFunds
	}
	l.balances[user] -= amount
	return nil
}

// Credit unconditionally adds amount to user's balance. Used for
// payouts and refunds.
func (l *Ledger) Credit(user uuid.UUID, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[user] += amount
}

// Balance returns user's spendable chips.
func (l *Ledger) Balance(user uuid.UUID) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[user]
}
