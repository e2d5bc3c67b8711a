package kuhn

import "errors"

// Every engine failure is one of these named errors so that callers can
// tell a wrong turn from a finished game from an empty bankroll
// programmatically. Operations validate all preconditions before
// mutating anything; a failed call leaves exactly the prior state.
var (
	ErrNotEnoughChips         = errors.New("not enough chips")
	ErrInvalidPlayerB         = errors.New("cannot join a game you created")
	ErrNotInGame              = errors.New("user has no game")
	ErrGameNotStarted         = errors.New("game has not been accepted yet")
	ErrGameEnded              = errors.New("game has already ended")
	ErrGameNotEnded           = errors.New("game has not ended")
	ErrNotYourTurn            = errors.New("not your turn")
	ErrInvalidAction          = errors.New("action not legal in this state")
	ErrInvalidGame            = errors.New("no game with that id")
	ErrNotPlayerInGame        = errors.New("not a player in this game")
	ErrSignerNotMessageSender = errors.New("permission signer is not the caller")
	ErrOpponentStillHasTime   = errors.New("opponent still has time")
	ErrItsYourTurn            = errors.New("cannot timeout opponent on your own turn")
	ErrGameStarted            = errors.New("game has already been accepted")
	ErrOpponentHasLeft        = errors.New("opponent has left for another game")
	ErrRematchCancelled       = errors.New("rematch request was cancelled")
)
