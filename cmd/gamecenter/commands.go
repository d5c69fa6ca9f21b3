package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/console"
	"github.com/lox/gamecenter/internal/menu"
	"github.com/lox/gamecenter/internal/randutil"
	"github.com/lox/gamecenter/internal/simulator"
)

// ignoreClosedInput treats a closed stdin as a normal way to leave
func ignoreClosedInput(err error) error {
	if errors.Is(err, console.ErrInputClosed) {
		return nil
	}
	return err
}

type MenuCmd struct{}

func (c *MenuCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	con := console.New(console.Options{
		In:                os.Stdin,
		Out:               os.Stdout,
		Color:             !cfg.Display.NoColor,
		ShowOpponentCards: cfg.Display.ShowOpponentCards,
		Rng:               randutil.NewFromSeed(cfg.Game.Seed),
		Logger:            logger,
		Rounds:            cfg.Game.BlackjackRounds,
	})
	pick := func() (menu.Choice, error) { return menu.Run(os.Stdin, os.Stdout) }
	return runMenu(con, pick, logger, os.Stdout)
}

// runMenu plays the picked games on one console until Exit. The console, and
// with it the buffered input, is shared across games.
func runMenu(con *console.Console, pick func() (menu.Choice, error), logger *log.Logger, out io.Writer) error {
	for {
		choice, err := pick()
		if err != nil {
			return err
		}
		logger.Debug("Menu choice", "choice", choice)
		if choice == menu.Exit {
			fmt.Fprintln(out, "Thanks for playing!")
			return nil
		}

		switch choice {
		case menu.Blackjack:
			_, err = con.RunBlackjack()
		case menu.OldMaid:
			_, err = con.RunOldMaid()
		case menu.War:
			_, err = con.RunWar()
		}
		if err != nil {
			return ignoreClosedInput(err)
		}
		fmt.Fprintln(out)
	}
}

type BlackjackCmd struct {
	Rounds int    `short:"n" help:"Number of games to play (asks when 0)"`
	Deck   string `help:"Fixed deck order used for every game, e.g. AsKh5d7c"`
}

func (c *BlackjackCmd) Run(g *Globals) error {
	if c.Rounds < 0 {
		return fmt.Errorf("rounds cannot be negative")
	}
	return g.play(c.Deck, c.Rounds, func(con *console.Console) error {
		_, err := con.RunBlackjack()
		return err
	})
}

type OldMaidCmd struct{}

func (c *OldMaidCmd) Run(g *Globals) error {
	return g.play("", 0, func(con *console.Console) error {
		_, err := con.RunOldMaid()
		return err
	})
}

type WarCmd struct {
	Deck string `help:"Fixed deck order, e.g. 7s7hKd3c"`
}

func (c *WarCmd) Run(g *Globals) error {
	return g.play(c.Deck, 0, func(con *console.Console) error {
		_, err := con.RunWar()
		return err
	})
}

type SimulateCmd struct {
	Game    string        `arg:"" enum:"blackjack,old-maid,war" help:"Game to simulate (blackjack, old-maid, war)"`
	Games   int           `short:"n" help:"Number of games (default from config)"`
	Workers int           `short:"w" help:"Parallel workers (default from config, 0 = one per CPU)"`
	Timeout time.Duration `help:"Per-game timeout (default from config)"`
	StandOn int           `help:"Blackjack bot stands at or above this value (default from config)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	config := simulator.Config{
		Game:    c.Game,
		Games:   cfg.Simulate.Games,
		Seed:    cfg.Game.Seed,
		Workers: cfg.Simulate.Workers,
		Timeout: cfg.SimulateTimeout(),
		StandOn: cfg.Simulate.StandOn,
		Logger:  logger,
	}
	if c.Games > 0 {
		config.Games = c.Games
	}
	if c.Workers > 0 {
		config.Workers = c.Workers
	}
	if c.Timeout > 0 {
		config.Timeout = c.Timeout
	}
	if c.StandOn > 0 {
		config.StandOn = c.StandOn
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	sim, err := simulator.New(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	con := console.New(console.Options{
		In:     os.Stdin,
		Out:    os.Stdout,
		Color:  !cfg.Display.NoColor,
		Logger: logger,
	})
	con.PrintStatistics(c.Game, stats)
	fmt.Printf("Seed: %d\n", config.Seed)
	return nil
}
