package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablestakes/kuhn/chips"
	"github.com/tablestakes/kuhn/dealer"
	"github.com/tablestakes/kuhn/directory"
	"github.com/tablestakes/kuhn/domain/kuhn"
	"github.com/tablestakes/kuhn/events"
)

// recorder captures every emitted event for assertions.
type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(e events.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) last(kind events.Kind) (events.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}

type fixture struct {
	t    *testing.T
	e    *Engine
	sink *recorder
	bob  uuid.UUID
	ada  uuid.UUID
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:    t,
		sink: &recorder{},
		bob:  uuid.New(),
		ada:  uuid.New(),
		now:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.e = New(DefaultConfig(), chips.NewLedger(), dealer.New(), directory.New(), f.sink)
	f.e.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) dealIn(user uuid.UUID, amount uint64) {
	f.t.Helper()
	if err := f.e.DealMeIn(user, amount); err != nil {
		f.t.Fatalf("DealMeIn: %v", err)
	}
}

// createGame funds both players with 100 chips and pairs them up.
func (f *fixture) createGame() uint64 {
	f.t.Helper()
	f.dealIn(f.bob, 100)
	f.dealIn(f.ada, 100)
	if _, err := f.e.FindGame(f.bob); err != nil {
		f.t.Fatalf("bob FindGame: %v", err)
	}
	gid, err := f.e.FindGame(f.ada)
	if err != nil {
		f.t.Fatalf("ada FindGame: %v", err)
	}
	return gid
}

func (f *fixture) game(gid uint64) kuhn.Game {
	f.t.Helper()
	g, err := f.e.Game(gid)
	if err != nil {
		f.t.Fatalf("Game(%d): %v", gid, err)
	}
	return g
}

func (f *fixture) act(user uuid.UUID, action kuhn.PlayerAction) {
	f.t.Helper()
	if err := f.e.PerformAction(user, action); err != nil {
		f.t.Fatalf("PerformAction(%v): %v", action, err)
	}
}

// playout plays the first available action each turn until the game
// ends.
func (f *fixture) playout(gid uint64) {
	f.t.Helper()
	for {
		g := f.game(gid)
		if g.Ended() {
			return
		}
		f.act(g.ActivePlayer, kuhn.AvailableActions(g.Action1, g.Action2)[0])
	}
}

func (f *fixture) starter(gid uint64) (starter, opponent uuid.UUID) {
	f.t.Helper()
	g := f.game(gid)
	if g.StartingPlayer == f.bob {
		return f.bob, f.ada
	}
	return f.ada, f.bob
}

func TestDealMeIn(t *testing.T) {
	f := newFixture(t)
	f.dealIn(f.bob, 100)
	if got := f.e.Chips(f.bob); got != 100 {
		t.Errorf("Chips = %d, want 100", got)
	}
	e, ok := f.sink.last(events.PlayerDealtIn)
	if !ok || e.Actor != f.bob || e.Amount != 100 {
		t.Errorf("PlayerDealtIn event = %+v, ok=%v", e, ok)
	}
	if err := f.e.DealMeIn(f.bob, 0); err == nil {
		t.Error("zero deposit must fail")
	}
}

func TestFindGameRequiresChips(t *testing.T) {
	f := newFixture(t)
	if _, err := f.e.FindGame(f.bob); !errors.Is(err, kuhn.ErrNotEnoughChips) {
		t.Errorf("FindGame without chips = %v, want ErrNotEnoughChips", err)
	}
}

func TestFindGameCreates(t *testing.T) {
	f := newFixture(t)
	f.dealIn(f.bob, 100)

	gid, err := f.e.FindGame(f.bob)
	if err != nil {
		t.Fatalf("FindGame: %v", err)
	}
	if gid != 1 {
		t.Errorf("first gid = %d, want 1", gid)
	}

	g := f.game(gid)
	if g.PlayerA != f.bob {
		t.Error("playerA is not the creator")
	}
	if g.PlayerB != uuid.Nil {
		t.Error("playerB must be unset")
	}
	if g.Accepted {
		t.Error("game must not be accepted yet")
	}
	if g.Pot != 1 {
		t.Errorf("pot = %d, want the creator's ante", g.Pot)
	}
	if got := f.e.Chips(f.bob); got != 99 {
		t.Errorf("creator chips = %d, want 99", got)
	}
	if got := f.e.OpenGameID(); got != gid {
		t.Errorf("open game = %d, want %d", got, gid)
	}
	if e, ok := f.sink.last(events.GameCreated); !ok || e.Actor != f.bob || e.GID != gid {
		t.Errorf("GameCreated event = %+v, ok=%v", e, ok)
	}
}

func TestFindGameJoins(t *testing.T) {
	f := newFixture(t)
	f.dealIn(f.bob, 100)
	if _, err := f.e.FindGame(f.bob); err != nil {
		t.Fatal(err)
	}

	// the creator cannot seat himself as playerB
	if _, err := f.e.FindGame(f.bob); !errors.Is(err, kuhn.ErrInvalidPlayerB) {
		t.Errorf("creator re-find = %v, want ErrInvalidPlayerB", err)
	}

	// joining still requires chips
	if _, err := f.e.FindGame(f.ada); !errors.Is(err, kuhn.ErrNotEnoughChips) {
		t.Errorf("broke joiner = %v, want ErrNotEnoughChips", err)
	}

	f.dealIn(f.ada, 100)
	gid, err := f.e.FindGame(f.ada)
	if err != nil {
		t.Fatalf("ada FindGame: %v", err)
	}

	g := f.game(gid)
	if !g.Accepted {
		t.Error("game must be accepted")
	}
	if g.PlayerB != f.ada {
		t.Error("ada is not playerB")
	}
	if g.ActivePlayer != f.bob && g.ActivePlayer != f.ada {
		t.Error("active player must be one of the two seats")
	}
	if g.ActivePlayer != g.StartingPlayer {
		t.Error("active player must start")
	}
	if g.Pot != 2 {
		t.Errorf("pot = %d, want both antes", g.Pot)
	}
	if got := f.e.Chips(f.ada); got != 99 {
		t.Errorf("joiner chips = %d, want 99", got)
	}
	if got := f.e.OpenGameID(); got != 0 {
		t.Errorf("open game = %d, want 0 after join", got)
	}
	if e, ok := f.sink.last(events.GameJoined); !ok || e.Actor != f.ada || e.GID != gid {
		t.Errorf("GameJoined event = %+v, ok=%v", e, ok)
	}
}

// sequences covers every branch of the action table with its pot
// trajectory and net chip movement.
func TestAllGameplayBranches(t *testing.T) {
	tests := []struct {
		name        string
		actions     []kuhn.PlayerAction
		wantOutcome kuhn.Outcome
		wantPot     uint64
		// net chip change for the starting player if they win / lose;
		// showdown winner depends on cards, fold winner is fixed.
		starterWins *bool // nil means decided by showdown
	}{
		{
			name:        "check check showdown",
			actions:     []kuhn.PlayerAction{kuhn.Check, kuhn.Check},
			wantOutcome: kuhn.Showdown,
			wantPot:     2,
		},
		{
			name:        "bet fold",
			actions:     []kuhn.PlayerAction{kuhn.Bet, kuhn.Fold},
			wantOutcome: kuhn.FoldOut,
			wantPot:     3,
			starterWins: boolPtr(true),
		},
		{
			name:        "bet call showdown",
			actions:     []kuhn.PlayerAction{kuhn.Bet, kuhn.Call},
			wantOutcome: kuhn.Showdown,
			wantPot:     4,
		},
		{
			name:        "check bet fold",
			actions:     []kuhn.PlayerAction{kuhn.Check, kuhn.Bet, kuhn.Fold},
			wantOutcome: kuhn.FoldOut,
			wantPot:     3,
			starterWins: boolPtr(false),
		},
		{
			name:        "check bet call showdown",
			actions:     []kuhn.PlayerAction{kuhn.Check, kuhn.Bet, kuhn.Call},
			wantOutcome: kuhn.Showdown,
			wantPot:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			gid := f.createGame()
			starter, opponent := f.starter(gid)
			turns := []uuid.UUID{starter, opponent, starter}

			for i, action := range tt.actions {
				g := f.game(gid)

				// the other seat may never act
				other := g.Opponent(turns[i])
				if err := f.e.PerformAction(other, action); !errors.Is(err, kuhn.ErrNotYourTurn) {
					t.Fatalf("step %d: off-turn action = %v, want ErrNotYourTurn", i, err)
				}

				// every illegal action must fail without side effects
				for _, bad := range kuhn.AllActions {
					if kuhn.Legal(g.Action1, g.Action2, bad) {
						continue
					}
					if err := f.e.PerformAction(turns[i], bad); !errors.Is(err, kuhn.ErrInvalidAction) {
						t.Fatalf("step %d: illegal %v = %v, want ErrInvalidAction", i, bad, err)
					}
					if after := f.game(gid); after != g {
						t.Fatalf("step %d: illegal %v mutated the game", i, bad)
					}
				}

				f.act(turns[i], action)
			}

			g := f.game(gid)
			if g.Outcome != tt.wantOutcome {
				t.Fatalf("outcome = %v, want %v", g.Outcome, tt.wantOutcome)
			}
			if g.Pot != tt.wantPot {
				t.Errorf("pot = %d, want %d", g.Pot, tt.wantPot)
			}
			if g.CardA == kuhn.NoCard || g.CardB == kuhn.NoCard || g.CardA == g.CardB {
				t.Errorf("cards not properly revealed: %v %v", g.CardA, g.CardB)
			}

			wantWinner := g.PlayerB
			if tt.starterWins != nil {
				wantWinner = opponent
				if *tt.starterWins {
					wantWinner = starter
				}
			} else if g.CardA.Beats(g.CardB) {
				wantWinner = g.PlayerA
			}
			if g.Winner != wantWinner {
				t.Errorf("winner = %v, want %v", g.Winner, wantWinner)
			}

			// zero-sum settlement: both started with 100
			winnerChips := f.e.Chips(g.Winner)
			loserChips := f.e.Chips(g.Opponent(g.Winner))
			if winnerChips+loserChips != 200 {
				t.Errorf("chips not conserved: %d + %d", winnerChips, loserChips)
			}
			if winnerChips-100 != 100-loserChips {
				t.Errorf("settlement not zero-sum: winner %d, loser %d", winnerChips, loserChips)
			}
			if winnerChips <= loserChips {
				t.Errorf("winner did not gain: winner %d, loser %d", winnerChips, loserChips)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestPerformActionValidation(t *testing.T) {
	f := newFixture(t)
	f.dealIn(f.bob, 1)
	f.dealIn(f.ada, 1)
	if _, err := f.e.FindGame(f.bob); err != nil {
		t.Fatal(err)
	}

	if err := f.e.PerformAction(f.bob, kuhn.Bet); !errors.Is(err, kuhn.ErrGameNotStarted) {
		t.Errorf("action before join = %v, want ErrGameNotStarted", err)
	}

	gid, err := f.e.FindGame(f.ada)
	if err != nil {
		t.Fatal(err)
	}

	stranger := uuid.New()
	if err := f.e.PerformAction(stranger, kuhn.Bet); !errors.Is(err, kuhn.ErrNotInGame) {
		t.Errorf("stranger action = %v, want ErrNotInGame", err)
	}

	// both players anted their only chip, so betting is unaffordable
	starter, _ := f.starter(gid)
	if err := f.e.PerformAction(starter, kuhn.Bet); !errors.Is(err, kuhn.ErrNotEnoughChips) {
		t.Errorf("unaffordable bet = %v, want ErrNotEnoughChips", err)
	}
	if g := f.game(gid); g.Pot != 2 || g.Action1 != kuhn.Empty {
		t.Error("failed bet must not change the game")
	}

	f.playout(gid)
	if err := f.e.PerformAction(starter, kuhn.Bet); !errors.Is(err, kuhn.ErrGameEnded) {
		t.Errorf("action after end = %v, want ErrGameEnded", err)
	}
}

func TestOutcomeIsWriteOnce(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()
	f.playout(gid)

	before := f.game(gid)
	if !before.Ended() || before.Winner == uuid.Nil {
		t.Fatal("playout did not settle the game")
	}

	for _, user := range []uuid.UUID{f.bob, f.ada} {
		for _, action := range kuhn.AllActions {
			if err := f.e.PerformAction(user, action); !errors.Is(err, kuhn.ErrGameEnded) {
				t.Fatalf("post-terminal action = %v, want ErrGameEnded", err)
			}
		}
		if err := f.e.Resign(user); !errors.Is(err, kuhn.ErrGameEnded) {
			t.Fatalf("post-terminal resign = %v, want ErrGameEnded", err)
		}
		if err := f.e.TimeoutOpponent(user); !errors.Is(err, kuhn.ErrGameEnded) {
			t.Fatalf("post-terminal timeout = %v, want ErrGameEnded", err)
		}
	}

	if after := f.game(gid); after != before {
		t.Error("terminal game changed after failed operations")
	}
}

func TestDeadlineExtendsAfterAction(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()
	starter, _ := f.starter(gid)

	first := f.game(gid).Deadline
	f.advance(30 * time.Second)
	f.act(starter, kuhn.Check)

	g := f.game(gid)
	if !g.Deadline.After(first) {
		t.Error("deadline must be re-armed from the action time")
	}
	if want := f.now.Add(f.e.cfg.TurnTimeout); !g.Deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", g.Deadline, want)
	}
	if g.ActivePlayer != g.Opponent(starter) {
		t.Error("turn must pass to the opponent")
	}
}

func TestTimeoutReversions(t *testing.T) {
	f := newFixture(t)

	if err := f.e.TimeoutOpponent(f.bob); !errors.Is(err, kuhn.ErrNotInGame) {
		t.Errorf("no game = %v, want ErrNotInGame", err)
	}

	f.dealIn(f.bob, 100)
	f.dealIn(f.ada, 100)
	if _, err := f.e.FindGame(f.bob); err != nil {
		t.Fatal(err)
	}
	if err := f.e.TimeoutOpponent(f.bob); !errors.Is(err, kuhn.ErrGameNotStarted) {
		t.Errorf("unaccepted game = %v, want ErrGameNotStarted", err)
	}

	gid, err := f.e.FindGame(f.ada)
	if err != nil {
		t.Fatal(err)
	}
	g := f.game(gid)
	active := g.ActivePlayer
	waiting := g.Opponent(active)

	if err := f.e.TimeoutOpponent(waiting); !errors.Is(err, kuhn.ErrOpponentStillHasTime) {
		t.Errorf("early timeout = %v, want ErrOpponentStillHasTime", err)
	}
	if err := f.e.TimeoutOpponent(active); !errors.Is(err, kuhn.ErrItsYourTurn) {
		t.Errorf("own-turn timeout = %v, want ErrItsYourTurn", err)
	}
}

func TestWinByTimeout(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()
	g := f.game(gid)
	waiting := g.Opponent(g.ActivePlayer)
	chipsBefore := f.e.Chips(waiting)

	f.advance(f.e.cfg.TurnTimeout + time.Second)
	if err := f.e.TimeoutOpponent(waiting); err != nil {
		t.Fatalf("TimeoutOpponent: %v", err)
	}

	g = f.game(gid)
	if g.Outcome != kuhn.Timeout {
		t.Errorf("outcome = %v, want TIMEOUT", g.Outcome)
	}
	if g.Winner != waiting {
		t.Error("waiting player must win")
	}
	if got := f.e.Chips(waiting); got != chipsBefore+g.Pot {
		t.Errorf("waiting chips = %d, want %d", got, chipsBefore+g.Pot)
	}
	if e, ok := f.sink.last(events.WonByTimeout); !ok || e.Actor != waiting || e.Amount != g.Pot {
		t.Errorf("WonByTimeout event = %+v, ok=%v", e, ok)
	}
}

func TestResign(t *testing.T) {
	f := newFixture(t)

	if err := f.e.Resign(f.bob); !errors.Is(err, kuhn.ErrNotInGame) {
		t.Errorf("no game = %v, want ErrNotInGame", err)
	}

	f.dealIn(f.bob, 100)
	f.dealIn(f.ada, 100)
	if _, err := f.e.FindGame(f.bob); err != nil {
		t.Fatal(err)
	}
	if err := f.e.Resign(f.bob); !errors.Is(err, kuhn.ErrGameNotStarted) {
		t.Errorf("unaccepted game = %v, want ErrGameNotStarted", err)
	}

	gid, err := f.e.FindGame(f.ada)
	if err != nil {
		t.Fatal(err)
	}

	adaBefore := f.e.Chips(f.ada)
	if err := f.e.Resign(f.bob); err != nil {
		t.Fatalf("Resign: %v", err)
	}

	g := f.game(gid)
	if g.Outcome != kuhn.Resign {
		t.Errorf("outcome = %v, want RESIGNATION", g.Outcome)
	}
	if g.Winner != f.ada {
		t.Error("the opponent of the resigner must win")
	}
	if got := f.e.Chips(f.ada); got != adaBefore+g.Pot {
		t.Errorf("ada chips = %d, want %d", got, adaBefore+g.Pot)
	}
}

func TestFindGameResignsExistingGame(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()

	if _, err := f.e.FindGame(f.bob); err != nil {
		t.Fatalf("FindGame: %v", err)
	}

	g := f.game(gid)
	if g.Outcome != kuhn.Resign || g.Winner != f.ada {
		t.Errorf("old game outcome = %v winner ok=%v, want resignation to ada", g.Outcome, g.Winner == f.ada)
	}
	if e, ok := f.sink.last(events.WonByResignation); !ok || e.Actor != f.ada || e.GID != gid || e.Amount != 2 {
		t.Errorf("WonByResignation event = %+v, ok=%v", e, ok)
	}
}

func TestCancelSearch(t *testing.T) {
	f := newFixture(t)

	if err := f.e.CancelSearch(f.bob); !errors.Is(err, kuhn.ErrNotInGame) {
		t.Errorf("no game = %v, want ErrNotInGame", err)
	}

	gid := f.createGame()
	if err := f.e.CancelSearch(f.bob); !errors.Is(err, kuhn.ErrGameStarted) {
		t.Errorf("accepted game = %v, want ErrGameStarted", err)
	}
	f.playout(gid)
}

func TestCancelUnacceptedGame(t *testing.T) {
	f := newFixture(t)
	f.dealIn(f.bob, 100)
	gid, err := f.e.FindGame(f.bob)
	if err != nil {
		t.Fatal(err)
	}

	listed := false
	for _, g := range f.e.UserGames(f.bob) {
		if g.GID == gid {
			listed = true
		}
	}
	if !listed {
		t.Fatal("created game missing from the creator's games")
	}

	if err := f.e.CancelSearch(f.bob); err != nil {
		t.Fatalf("CancelSearch: %v", err)
	}

	g := f.game(gid)
	if g.Outcome != kuhn.Cancel {
		t.Errorf("outcome = %v, want CANCEL", g.Outcome)
	}
	if g.Winner != uuid.Nil {
		t.Error("cancelled game must have no winner")
	}
	if got := f.e.Chips(f.bob); got != 100 {
		t.Errorf("chips = %d, want the ante back", got)
	}
	if got := f.e.OpenGameID(); got != 0 {
		t.Errorf("open game = %d, want 0", got)
	}
	for _, g := range f.e.UserGames(f.bob) {
		if g.GID == gid {
			t.Error("cancelled game must leave the creator's games list")
		}
	}
	if e, ok := f.sink.last(events.GameCancelled); !ok || e.Actor != f.bob || e.GID != gid {
		t.Errorf("GameCancelled event = %+v, ok=%v", e, ok)
	}

	// the stale pointer does not allow a second cancel
	if err := f.e.CancelSearch(f.bob); !errors.Is(err, kuhn.ErrNotInGame) {
		t.Errorf("second cancel = %v, want ErrNotInGame", err)
	}
}

func TestGameCard(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()
	stranger := uuid.New()

	if _, err := f.e.GameCard(f.bob, Permission{Issuer: f.bob}, gid+1); !errors.Is(err, kuhn.ErrInvalidGame) {
		t.Errorf("unknown gid = %v, want ErrInvalidGame", err)
	}
	if _, err := f.e.GameCard(stranger, Permission{Issuer: stranger}, gid); !errors.Is(err, kuhn.ErrNotPlayerInGame) {
		t.Errorf("stranger = %v, want ErrNotPlayerInGame", err)
	}
	if _, err := f.e.GameCard(f.bob, Permission{Issuer: f.ada}, gid); !errors.Is(err, kuhn.ErrSignerNotMessageSender) {
		t.Errorf("foreign permission = %v, want ErrSignerNotMessageSender", err)
	}

	bobCard, err := f.e.GameCard(f.bob, Permission{Issuer: f.bob}, gid)
	if err != nil {
		t.Fatalf("bob GameCard: %v", err)
	}
	adaCard, err := f.e.GameCard(f.ada, Permission{Issuer: f.ada}, gid)
	if err != nil {
		t.Fatalf("ada GameCard: %v", err)
	}
	if bobCard == adaCard {
		t.Error("players hold identical cards")
	}

	// pre-reveal the game record shows nothing
	g := f.game(gid)
	if g.CardA != kuhn.NoCard || g.CardB != kuhn.NoCard {
		t.Error("cards leaked into the game record before reveal")
	}

	f.playout(gid)
	g = f.game(gid)
	if g.CardA != bobCard || g.CardB != adaCard {
		t.Errorf("revealed cards (%v, %v) differ from sealed (%v, %v)", g.CardA, g.CardB, bobCard, adaCard)
	}
}

func TestPairGames(t *testing.T) {
	f := newFixture(t)
	gid := f.createGame()
	f.playout(gid)

	forward := f.e.PairGames(f.bob, f.ada)
	reverse := f.e.PairGames(f.ada, f.bob)
	if len(forward) != 1 || forward[0].GID != gid {
		t.Fatalf("PairGames = %v, want [%d]", gids(forward), gid)
	}
	if len(reverse) != len(forward) || reverse[0].GID != forward[0].GID {
		t.Error("pair games must not depend on argument order")
	}

	// rematches extend the pair history in insertion order
	if _, err := f.e.Rematch(f.bob); err != nil {
		t.Fatal(err)
	}
	rematchGID, err := f.e.Rematch(f.ada)
	if err != nil {
		t.Fatal(err)
	}
	f.playout(rematchGID)

	forward = f.e.PairGames(f.bob, f.ada)
	if len(forward) != 2 || forward[0].GID != gid || forward[1].GID != rematchGID {
		t.Errorf("PairGames = %v, want [%d %d]", gids(forward), gid, rematchGID)
	}
}

func gids(games []kuhn.Game) []uint64 {
	ids := make([]uint64, len(games))
	for i, g := range games {
		ids[i] = g.GID
	}
	return ids
}
