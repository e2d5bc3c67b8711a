package main

import (
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/tablestakes/kuhn/domain/kuhn"
)

func cardFace(c kuhn.Card) string {
	if c == kuhn.NoCard {
		return pterm.Gray("[?]")
	}
	return pterm.LightYellow("[" + c.Letter() + "]")
}

func printTable(g kuhn.Game, human uuid.UUID, card kuhn.Card, name string, humanChips, computerChips uint64) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	turn := pterm.LightRed("Computer to act")
	if g.ActivePlayer == human {
		turn = pterm.LightGreen("Your turn")
	}

	opponent := pterm.Panel{Data: pbox.WithTitle("Computer").WithTitleTopLeft().Sprintf(
		"Bankroll: %d\n%s", computerChips, cardFace(kuhn.NoCard))}
	pot := pterm.Panel{Data: pterm.DefaultHeader.WithBackgroundStyle(pterm.BgGreen.ToStyle()).Sprintf(
		" Pot: %d | %s ", g.Pot, turn)}
	player := pterm.Panel{Data: pbox.WithTitle(name).WithTitleTopLeft().Sprintf(
		"Bankroll: %d\n%s", humanChips, cardFace(card))}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{opponent},
		{pot},
		{player},
	}).Render()
}

func printOutcome(g kuhn.Game, human uuid.UUID, card kuhn.Card, name string, humanChips, computerChips uint64) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	yourCard, theirCard := g.CardA, g.CardB
	if g.PlayerB == human {
		yourCard, theirCard = g.CardB, g.CardA
	}
	if yourCard == kuhn.NoCard {
		yourCard = card
	}

	verdict := pterm.LightRed("The computer won the pot")
	if g.Winner == human {
		verdict = pterm.LightGreen("You won the pot")
	}

	body := pterm.Sprintfln("You: %s  Computer: %s", cardFace(yourCard), cardFace(theirCard))
	body += pterm.Sprintfln("Outcome: %s", g.Outcome)
	body += pterm.Sprintfln("%s of %d chips", verdict, g.Pot)
	body += pterm.Sprintf("Bankrolls: %s %d, Computer %d", name, humanChips, computerChips)

	pbox.WithTitle(pterm.LightGreen("|" + g.Outcome.String() + "|")).WithTitleTopCenter().Println(body)
}
