// Package directory is the session directory of the matchmaking system:
// the single open-game pointer, each user's current game, each user's
// played-games list and the pair-history lists. It is a plain in-memory
// service injected into the engine so it can be tested in isolation or
// swapped for a persistent store.
package directory

import (
	"bytes"
	"sync"

	"github.com/google/uuid"
)

// pairKey identifies an unordered pair of users: the two ids are stored
// in lexicographic order so (A,B) and (B,A) collide.
type pairKey [2]uuid.UUID

func keyFor(a, b uuid.UUID) pairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Directory holds the matchmaking indices. At most one open
// (unaccepted, non-rematch) game exists at a time, so the open game is
// a single pointer rather than a queue. Safe for concurrent use.
type Directory struct {
	mu        sync.Mutex
	openGID   uint64
	userGame  map[uuid.UUID]uint64
	userGames map[uuid.UUID][]uint64
	pairGames map[pairKey][]uint64
}

func New() *Directory {
	return &Directory{
		userGame:  make(map[uuid.UUID]uint64),
		userGames: make(map[uuid.UUID][]uint64),
		pairGames: make(map[pairKey][]uint64),
	}
}

// OpenGID returns the gid of the globally open game, 0 if none.
func (d *Directory) OpenGID() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openGID
}

// PublishOpen marks gid as the open game awaiting a second player.
func (d *Directory) PublishOpen(gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openGID = gid
}

// ClearOpen removes gid from the open slot if it currently holds it.
func (d *Directory) ClearOpen(gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openGID == gid {
		d.openGID = 0
	}
}

// UserGame returns the gid of user's most recent created or joined game
// (including a pending rematch offer), 0 if none.
func (d *Directory) UserGame(user uuid.UUID) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.userGame[user]
}

// SetUserGame points user's current-game index at gid.
func (d *Directory) SetUserGame(user uuid.UUID, gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userGame[user] = gid
}

// AppendUserGame adds gid to user's played-games list.
func (d *Directory) AppendUserGame(user uuid.UUID, gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userGames[user] = append(d.userGames[user], gid)
}

// RemoveUserGame deletes gid from user's played-games list. Used only
// when an unaccepted game is cancelled; accepted games stay listed
// forever.
func (d *Directory) RemoveUserGame(user uuid.UUID, gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	games := d.userGames[user]
	for i, g := range games {
		if g == gid {
			d.userGames[user] = append(games[:i:i], games[i+1:]...)
			return
		}
	}
}

// UserGames returns user's played games in insertion order.
func (d *Directory) UserGames(user uuid.UUID) []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	games := d.userGames[user]
	out := make([]uint64, len(games))
	copy(out, games)
	return out
}

// AppendPairGame records gid in the append-only history of the pair.
func (d *Directory) AppendPairGame(a, b uuid.UUID, gid uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := keyFor(a, b)
	d.pairGames[k] = append(d.pairGames[k], gid)
}

// PairGames returns the games played between a and b in insertion
// order; argument order does not matter.
func (d *Directory) PairGames(a, b uuid.UUID) []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	games := d.pairGames[keyFor(a, b)]
	out := make([]uint64, len(games))
	copy(out, games)
	return out
}
