// Package dealer deals the hidden cards of a Kuhn Poker game. Each
// accepted game gets one ordered pair of distinct ranks, drawn
// uniformly from the six possible pairs. The ranks stay sealed inside
// the dealer: a player may read their own card, nobody may read the
// opponent's, and both become public only once the engine reveals the
// game at a terminal outcome.
package dealer

import (
	"crypto/cipher"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/tablestakes/kuhn/domain/kuhn"
)

var suite = suites.MustFind("Ed25519")

// pairs enumerates the ordered pairs of distinct ranks. Selecting an
// index uniformly gives each pair probability 1/6 and each marginal
// rank probability 1/3, with no possibility of a collision.
var pairs = [6][2]kuhn.Card{
	{kuhn.Jack, kuhn.Queen},
	{kuhn.Jack, kuhn.King},
	{kuhn.Queen, kuhn.Jack},
	{kuhn.Queen, kuhn.King},
	{kuhn.King, kuhn.Jack},
	{kuhn.King, kuhn.Queen},
}

type hand struct {
	playerA, playerB uuid.UUID
	cardA, cardB     kuhn.Card
}

// Dealer draws and keeps the sealed cards for every dealt game. Safe
// for concurrent use.
type Dealer struct {
	mu     sync.Mutex
	stream cipher.Stream
	hands  map[uint64]hand
}

func New() *Dealer {
	return &Dealer{
		stream: suite.RandomStream(),
		hands:  make(map[uint64]hand),
	}
}

var (
	six = big.NewInt(6)
	two = big.NewInt(2)
)

// Deal draws the two distinct cards for the game and seals them under
// the seat owners' identities. Called once per accepted game.
func (d *Dealer) Deal(gid uint64, playerA, playerB uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dealt := d.hands[gid]; dealt {
		return fmt.Errorf("game %d already dealt", gid)
	}
	pair := pairs[random.Int(six, d.stream).Int64()]
	d.hands[gid] = hand{
		playerA: playerA,
		playerB: playerB,
		cardA:   pair[0],
		cardB:   pair[1],
	}
	return nil
}

// Flip is the unpredictable coin used to pick the starting seat.
func (d *Dealer) Flip() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return random.Int(two, d.stream).Int64() == 1
}

// PlayerCard returns requester's own card. It never discloses the
// opponent's card through this path.
func (d *Dealer) PlayerCard(gid uint64, requester uuid.UUID) (kuhn.Card, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, dealt := d.hands[gid]
	if !dealt {
		return kuhn.NoCard, kuhn.ErrInvalidGame
	}
	switch requester {
	case h.playerA:
		return h.cardA, nil
	case h.playerB:
		return h.cardB, nil
	default:
		return kuhn.NoCard, kuhn.ErrNotPlayerInGame
	}
}

// Reveal releases the canonical ranks of the game's cards. The engine
// calls it exactly when the outcome becomes terminal.
func (d *Dealer) Reveal(gid uint64) (cardA, cardB kuhn.Card, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, dealt := d.hands[gid]
	if !dealt {
		return kuhn.NoCard, kuhn.NoCard, kuhn.ErrInvalidGame
	}
	return h.cardA, h.cardB, nil
}
