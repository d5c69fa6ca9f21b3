package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/config"
	"github.com/lox/gamecenter/internal/console"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/randutil"
)

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"gamecenter.hcl" type:"path" help:"HCL config file (missing file uses defaults)"`
	Seed    int64  `help:"RNG seed (0 for random)"`
	Debug   bool   `help:"Log at debug level"`
	NoColor bool   `help:"Disable colored output"`
}

// load reads the config file and environment, then applies flag overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	if g.Seed != 0 {
		cfg.Game.Seed = g.Seed
	}
	if g.Debug {
		cfg.Logging.Level = "debug"
	}
	if g.NoColor {
		cfg.Display.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "GAMECENTER",
		Level:           cfg.LogLevel(),
	})
}

// openLog opens the configured log file. Games own the terminal, so their
// logs never go to stdout or stderr.
func openLog(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return newLogger(f, cfg), closeFn, nil
}

// parseDeck turns a --deck value into a fixed card order
func parseDeck(value string) ([]deck.Card, error) {
	if value == "" {
		return nil, nil
	}
	cards, err := deck.ParseCards(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --deck: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("invalid --deck: no cards")
	}
	return cards, nil
}

// play loads config and logging, then runs fn against a console on the terminal
func (g *Globals) play(deckFlag string, rounds int, fn func(*console.Console) error) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	cards, err := parseDeck(deckFlag)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if rounds == 0 {
		rounds = cfg.Game.BlackjackRounds
	}
	logger.Info("Starting", "seed", cfg.Game.Seed, "fixedDeck", len(cards) > 0)

	con := console.New(console.Options{
		In:                os.Stdin,
		Out:               os.Stdout,
		Color:             !cfg.Display.NoColor,
		ShowOpponentCards: cfg.Display.ShowOpponentCards,
		Rng:               randutil.NewFromSeed(cfg.Game.Seed),
		Logger:            logger,
		Deck:              cards,
		Rounds:            rounds,
	})
	return ignoreClosedInput(fn(con))
}
