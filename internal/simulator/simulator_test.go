package simulator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/gamecenter/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, game string, games int) Config {
	return Config{
		Game:    game,
		Games:   games,
		Seed:    12345,
		Workers: 4,
		Timeout: 5 * time.Second,
		Logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
		Clock:   quartz.NewMock(t),
	}
}

func TestSimulator_EveryGame(t *testing.T) {
	for _, game := range Games {
		t.Run(game, func(t *testing.T) {
			sim, err := New(testConfig(t, game, 20))
			require.NoError(t, err)

			stats, err := sim.Run(context.Background())
			require.NoError(t, err)
			require.NotNil(t, stats)

			assert.Equal(t, 20, stats.Games)
			assert.Equal(t, stats.Games, stats.Wins+stats.Losses+stats.Ties)
			assert.Positive(t, stats.MeanLength())
			require.NoError(t, stats.Validate())
		})
	}
}

func TestSimulator_OldMaidHasNoTies(t *testing.T) {
	sim, err := New(testConfig(t, GameOldMaid, 30))
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Ties)
}

func TestSimulator_WarAlwaysExhaustsDeck(t *testing.T) {
	sim, err := New(testConfig(t, GameWar, 10))
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"deck empty": 10}, stats.Reasons)
}

func TestSimulator_Reproducible(t *testing.T) {
	run := func(workers int) *statistics.Statistics {
		config := testConfig(t, GameBlackjack, 40)
		config.Workers = workers
		sim, err := New(config)
		require.NoError(t, err)
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return stats
	}

	one, many := run(1), run(8)
	assert.Equal(t, one.Values, many.Values)
	assert.Equal(t, one.Wins, many.Wins)
	assert.Equal(t, one.Reasons, many.Reasons)
}

func TestSimulator_InvalidConfig(t *testing.T) {
	_, err := New(testConfig(t, "poker", 1))
	assert.Error(t, err)

	_, err = New(testConfig(t, GameWar, 0))
	assert.Error(t, err)
}

func TestSimulator_Defaults(t *testing.T) {
	sim, err := New(Config{Game: GameWar, Games: 1})
	require.NoError(t, err)
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, 5*time.Second, sim.config.Timeout)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
	assert.NotEmpty(t, sim.ID())
}

func TestSimulator_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	config := testConfig(t, GameWar, 1)
	config.Clock = mockClock
	sim, err := New(config)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	sim.play = func(seed int64) (statistics.GameResult, error) {
		close(started)
		<-release
		return statistics.GameResult{}, nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := sim.Run(ctx)
		errCh <- err
	}()

	<-started
	mockClock.Advance(config.Timeout).MustWait(ctx)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrTimeout)
	case <-ctx.Done():
		t.Fatal("simulation did not time out")
	}
}

func TestSimulator_GameErrorStopsRun(t *testing.T) {
	sim, err := New(testConfig(t, GameWar, 5))
	require.NoError(t, err)

	boom := errors.New("boom")
	sim.play = func(seed int64) (statistics.GameResult, error) {
		return statistics.GameResult{}, boom
	}

	_, err = sim.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSimulator_CancelledRun(t *testing.T) {
	sim, err := New(testConfig(t, GameWar, 50))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, stats)
}

func TestSimulator_CancelledMidRun(t *testing.T) {
	config := testConfig(t, GameWar, 10)
	config.Workers = 1
	sim, err := New(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.play = func(seed int64) (statistics.GameResult, error) {
		cancel()
		return statistics.GameResult{Outcome: statistics.Win, Length: 1, Seed: seed}, nil
	}

	stats, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, stats)
}
