package main

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/tablestakes/kuhn/domain/kuhn"
	"github.com/tablestakes/kuhn/engine"
)

// play runs an interactive match against a computer opponent until the
// player declines a rematch or runs out of chips.
func play(e *engine.Engine, cfg config, logger *slog.Logger) error {
	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").WithDefaultValue("you").Show()
	pterm.Println()
	pterm.Info.Printfln("Welcome to the table, %s", name)

	human := uuid.New()
	computer := uuid.New()
	if err := e.DealMeIn(human, cfg.StartingChips); err != nil {
		return err
	}
	if err := e.DealMeIn(computer, cfg.StartingChips); err != nil {
		return err
	}

	if _, err := e.FindGame(human); err != nil {
		return err
	}
	gid, err := e.FindGame(computer)
	if err != nil {
		return err
	}

	for {
		if err := playHand(e, gid, human, computer, name); err != nil {
			return err
		}
		if e.Chips(human) == 0 {
			pterm.Warning.Println("You are out of chips.")
			return nil
		}
		if e.Chips(computer) == 0 {
			pterm.Success.Println("You cleaned the computer out.")
			return nil
		}
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Rematch?").WithDefaultValue(true).Show()
		if !again {
			return nil
		}
		if _, err := e.Rematch(human); err != nil {
			return err
		}
		gid, err = e.Rematch(computer)
		if err != nil {
			return err
		}
		logger.Info("rematch accepted", "gid", gid)
	}
}

func playHand(e *engine.Engine, gid uint64, human, computer uuid.UUID, name string) error {
	card, err := e.GameCard(human, engine.Permission{Issuer: human}, gid)
	if err != nil {
		return err
	}

	for {
		g, err := e.Game(gid)
		if err != nil {
			return err
		}
		if g.Ended() {
			printOutcome(g, human, card, name, e.Chips(human), e.Chips(computer))
			return nil
		}
		printTable(g, human, card, name, e.Chips(human), e.Chips(computer))

		if g.ActivePlayer == human {
			if err := humanTurn(e, g, human); err != nil {
				return err
			}
			continue
		}
		if err := computerTurn(e, g, computer); err != nil {
			return err
		}
	}
}

func humanTurn(e *engine.Engine, g kuhn.Game, human uuid.UUID) error {
	options := []string{}
	for _, a := range kuhn.AvailableActions(g.Action1, g.Action2) {
		options = append(options, a.String())
	}
	for {
		selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()
		action := kuhn.ActionFromName(selected)
		if action == kuhn.Empty {
			pterm.Error.Printfln("Unknown action: %s", selected)
			continue
		}
		err := e.PerformAction(human, action)
		if errors.Is(err, kuhn.ErrNotEnoughChips) {
			pterm.Error.Println("You cannot afford that bet.")
			continue
		}
		return err
	}
}

func computerTurn(e *engine.Engine, g kuhn.Game, computer uuid.UUID) error {
	spinner, _ := pterm.DefaultSpinner.Start("The computer is thinking ...")
	time.Sleep(700 * time.Millisecond)

	actions := kuhn.AvailableActions(g.Action1, g.Action2)
	// drop unaffordable bets before picking at random
	affordable := actions[:0]
	for _, a := range actions {
		step, err := kuhn.NextStep(g.Action1, g.Action2, a)
		if err != nil {
			continue
		}
		if step.TakesBet && e.Chips(computer) == 0 {
			continue
		}
		affordable = append(affordable, a)
	}
	action := affordable[rand.Intn(len(affordable))]
	if err := e.PerformAction(computer, action); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success(pterm.Sprintf("The computer chose %s", action))
	return nil
}
