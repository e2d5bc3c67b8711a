// Package kuhn holds the domain model of two-player Kuhn Poker: the
// three-rank deck, the Game record, and the exhaustive legal-action
// table governing a hand.
//
// # Hand structure
//
// A hand has three sequential action slots. Slot 1 belongs to the
// starting player, slot 2 to the opponent, slot 3 (reached only after
// CHECK then BET) again to the starting player. The branch table in
// this package enumerates exactly which actions each slot accepts and
// what each one does: take a one-chip bet, end the hand by showdown,
// or end it by fold.
//
// # Outcomes
//
// A game ends by Showdown (higher rank wins), Fold, Timeout,
// Resignation, or Cancel (a search withdrawn before an opponent
// joined). Outcome and Winner are write-once.
package kuhn
