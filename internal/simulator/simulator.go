package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/gamecenter/internal/blackjack"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/oldmaid"
	"github.com/lox/gamecenter/internal/randutil"
	"github.com/lox/gamecenter/internal/statistics"
	"github.com/lox/gamecenter/internal/war"
	"golang.org/x/sync/errgroup"
)

// Games that can be simulated
const (
	GameBlackjack = "blackjack"
	GameOldMaid   = "old-maid"
	GameWar       = "war"
)

// Games lists every simulated game name
var Games = []string{GameBlackjack, GameOldMaid, GameWar}

// ErrTimeout is returned when a single game fails to finish in time
var ErrTimeout = errors.New("game timed out")

// Config holds configuration for running simulations
type Config struct {
	Game    string
	Games   int
	Seed    int64
	Workers int
	Timeout time.Duration
	StandOn int // blackjack bot threshold
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Simulator plays many bot-vs-bot games and aggregates the results
type Simulator struct {
	config Config
	id     string
	play   func(seed int64) (statistics.GameResult, error)
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.StandOn == 0 {
		config.StandOn = blackjack.DealerStandsOn
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	s := &Simulator{config: config, id: uuid.NewString()}
	switch config.Game {
	case GameBlackjack:
		s.play = s.playBlackjack
	case GameOldMaid:
		s.play = s.playOldMaid
	case GameWar:
		s.play = s.playWar
	default:
		return nil, fmt.Errorf("unknown game %q (valid: %v)", config.Game, Games)
	}
	return s, nil
}

// ID identifies this simulation run in logs
func (s *Simulator) ID() string { return s.id }

// Run executes the simulation and returns results. Game i is played with
// seed Seed+i, so a run is reproducible regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("sim", s.id, "game", s.config.Game)
	logger.Info("Starting simulation", "games", s.config.Games, "workers", s.config.Workers, "seed", s.config.Seed)
	started := time.Now()

	results := make([]statistics.GameResult, s.config.Games)
	parent := ctx
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			seed := s.config.Seed + int64(i)
			result, err := s.playWithTimeout(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Simulation failed", "error", err)
		return nil, err
	}
	// Games skipped after cancellation leave zero results behind
	if err := parent.Err(); err != nil {
		logger.Warn("Simulation cancelled", "error", err)
		return nil, fmt.Errorf("simulation cancelled: %w", err)
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete",
		"games", stats.Games,
		"winRate", fmt.Sprintf("%.3f", stats.WinRate()),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return stats, nil
}

// playWithTimeout runs a single game with timeout protection
func (s *Simulator) playWithTimeout(ctx context.Context, seed int64) (statistics.GameResult, error) {
	timedOut := make(chan struct{})
	timer := s.config.Clock.AfterFunc(s.config.Timeout, func() { close(timedOut) })
	defer timer.Stop()

	type outcome struct {
		result statistics.GameResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := s.play(seed)
		done <- outcome{result, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-timedOut:
		return statistics.GameResult{}, fmt.Errorf("%w after %v", ErrTimeout, s.config.Timeout)
	case <-ctx.Done():
		return statistics.GameResult{}, ctx.Err()
	}
}

func (s *Simulator) playBlackjack(seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)
	round := blackjack.NewRound(deck.NewShuffledDeck(rng), nil, nil)
	outcome, err := blackjack.Play(round, blackjack.ThresholdAgent{StandOn: s.config.StandOn})
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		Margin: float64(round.PlayerHand().Value() - round.DealerHand().Value()),
		Length: round.PlayerHand().Len(),
		Seed:   seed,
		Reason: outcome.String(),
	}
	switch outcome.Winner() {
	case blackjack.PlayerWins:
		result.Outcome = statistics.Win
	case blackjack.DealerWins:
		result.Outcome = statistics.Loss
	default:
		result.Outcome = statistics.Tie
	}
	return result, nil
}

func (s *Simulator) playWar(seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)
	game := war.NewGame(deck.NewShuffledDeck(rng), nil, nil)
	res, err := war.Play(game, war.AlwaysContinue{})
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		Margin: float64(res.Scores[0] - res.Scores[1]),
		Length: res.Rounds,
		Seed:   seed,
		Reason: res.Reason.String(),
	}
	switch res.Winner {
	case war.PlayerOne:
		result.Outcome = statistics.Win
	case war.PlayerTwo:
		result.Outcome = statistics.Loss
	default:
		result.Outcome = statistics.Tie
	}
	return result, nil
}

func (s *Simulator) playOldMaid(seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)
	game := oldmaid.NewGame(rng, nil, nil)
	res, err := oldmaid.Play(game, oldmaid.RandomAgent{Rng: rng})
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		Outcome: statistics.Loss,
		Margin:  float64(res.ComputerCards - res.HumanCards),
		Length:  res.Turns,
		Seed:    seed,
		Reason:  "old maid: " + res.OldMaid.String(),
	}
	if res.HumanWins() {
		result.Outcome = statistics.Win
	}
	return result, nil
}
