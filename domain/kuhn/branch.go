package kuhn

// Step is the effect of playing one legal action from a given hand
// state: whether a chip is taken for a bet, and which terminal outcome
// (if any) the action produces.
type Step struct {
	TakesBet bool
	Showdown bool
	Fold     bool
}

// Terminal reports whether the step ends the hand.
func (s Step) Terminal() bool {
	return s.Showdown || s.Fold
}

type branchNode struct {
	// indexed by PlayerAction; a nil entry means the action is illegal
	// from this state, including Empty which no slot accepts.
	steps [5]*stepEntry
}

type stepEntry struct {
	effect Step
	next   *branchNode
}

// gameTree is the exhaustive legal-action table of a Kuhn hand:
//
//	slot1 ∈ {CHECK, BET}
//	  CHECK → slot2 ∈ {CHECK, BET}
//	    CHECK → showdown
//	    BET   → takes 1 chip; slot3 ∈ {FOLD, CALL}
//	      FOLD → fold, starting player wins
//	      CALL → takes 1 chip; showdown
//	  BET   → takes 1 chip; slot2 ∈ {FOLD, CALL}
//	    FOLD → fold, starting player wins
//	    CALL → takes 1 chip; showdown
var gameTree = &branchNode{
	steps: actionSteps{
		Check: {
			effect: Step{},
			next: &branchNode{
				steps: actionSteps{
					Check: {effect: Step{Showdown: true}},
					Bet: {
						effect: Step{TakesBet: true},
						next: &branchNode{
							steps: actionSteps{
								Fold: {effect: Step{Fold: true}},
								Call: {effect: Step{TakesBet: true, Showdown: true}},
							}.build(),
						},
					},
				}.build(),
			},
		},
		Bet: {
			effect: Step{TakesBet: true},
			next: &branchNode{
				steps: actionSteps{
					Fold: {effect: Step{Fold: true}},
					Call: {effect: Step{TakesBet: true, Showdown: true}},
				}.build(),
			},
		},
	}.build(),
}

type actionSteps map[PlayerAction]*stepEntry

func (m actionSteps) build() [5]*stepEntry {
	var steps [5]*stepEntry
	for a, e := range m {
		steps[a] = e
	}
	return steps
}

// nodeFor returns the branch node for the state described by the filled
// prefix of the three action slots, or nil if the hand is already past
// its last slot.
func nodeFor(a1, a2 PlayerAction) *branchNode {
	if a1 == Empty {
		return gameTree
	}
	e1 := gameTree.steps[a1]
	if e1 == nil || e1.next == nil {
		return nil
	}
	if a2 == Empty {
		return e1.next
	}
	e2 := e1.next.steps[a2]
	if e2 == nil {
		return nil
	}
	return e2.next
}

// NextStep looks up the effect of playing action from the hand state
// (a1, a2 filled slots). It fails with ErrInvalidAction for any action
// outside the currently legal set.
func NextStep(a1, a2, action PlayerAction) (Step, error) {
	node := nodeFor(a1, a2)
	if node == nil {
		return Step{}, ErrInvalidAction
	}
	entry := node.steps[action]
	if entry == nil {
		return Step{}, ErrInvalidAction
	}
	return entry.effect, nil
}

// Legal reports whether action may be played from the hand state (a1, a2).
func Legal(a1, a2, action PlayerAction) bool {
	_, err := NextStep(a1, a2, action)
	return err == nil
}

// AvailableActions lists the legal actions from the hand state (a1, a2)
// in slot-value order. The list is empty once the hand is terminal.
func AvailableActions(a1, a2 PlayerAction) []PlayerAction {
	node := nodeFor(a1, a2)
	if node == nil {
		return nil
	}
	var actions []PlayerAction
	for _, a := range AllActions {
		if node.steps[a] != nil {
			actions = append(actions, a)
		}
	}
	return actions
}
