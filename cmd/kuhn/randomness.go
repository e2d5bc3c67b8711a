package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/tablestakes/kuhn/dealer"
	"github.com/tablestakes/kuhn/domain/kuhn"
)

// sampleRandomness deals a large number of hands and reports the
// observed deal and coin-flip frequencies, a quick fairness check on
// the card source.
func sampleRandomness(samples int) error {
	d := dealer.New()
	playerA, playerB := uuid.New(), uuid.New()

	pairs := map[[2]kuhn.Card]int{}
	flips := 0
	for i := 0; i < samples; i++ {
		gid := uint64(i + 1)
		if err := d.Deal(gid, playerA, playerB); err != nil {
			return err
		}
		cardA, cardB, err := d.Reveal(gid)
		if err != nil {
			return err
		}
		pairs[[2]kuhn.Card{cardA, cardB}]++
		if d.Flip() {
			flips++
		}
	}

	rows := pterm.TableData{{"Deal", "Count", "Share", "Expected"}}
	for _, a := range kuhn.Deck {
		for _, b := range kuhn.Deck {
			if a == b {
				continue
			}
			count := pairs[[2]kuhn.Card{a, b}]
			rows = append(rows, []string{
				a.Letter() + " / " + b.Letter(),
				fmt.Sprintf("%d", count),
				fmt.Sprintf("%.4f", float64(count)/float64(samples)),
				fmt.Sprintf("%.4f", 1.0/6),
			})
		}
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	pterm.Info.Printfln("Coin flips: %d of %d came up playerB (%.4f, expected 0.5000)",
		flips, samples, float64(flips)/float64(samples))
	return nil
}
