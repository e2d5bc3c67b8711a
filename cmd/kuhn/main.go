package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/tablestakes/kuhn/chips"
	"github.com/tablestakes/kuhn/dealer"
	"github.com/tablestakes/kuhn/directory"
	"github.com/tablestakes/kuhn/engine"
	"github.com/tablestakes/kuhn/events"
)

func main() {
	command := "play"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)

	// Create a new slog logger with the handler
	logger := slog.New(handler)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	switch command {
	case "play":
		pterm.DefaultBigText.WithLetters(
			putils.LettersFromStringWithStyle("K", pterm.FgRed.ToStyle()),
			putils.LettersFromStringWithStyle("uhn ", pterm.FgDarkGray.ToStyle()),
			putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
			putils.LettersFromStringWithStyle("oker", pterm.FgDarkGray.ToStyle()),
		).Render()

		e := engine.New(cfg.Engine, chips.NewLedger(), dealer.New(), directory.New(), events.SlogSink{Log: logger})
		if err := play(e, cfg, logger); err != nil {
			logger.Error("game aborted", "error", err.Error())
			os.Exit(1)
		}
	case "randomness":
		if err := sampleRandomness(cfg.Samples); err != nil {
			logger.Error("sampling failed", "error", err.Error())
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [play|randomness]\n", os.Args[0])
		os.Exit(1)
	}
}
