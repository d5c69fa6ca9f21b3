package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Outcome is a finished game from the first player's point of view
type Outcome int

const (
	Loss Outcome = iota - 1
	Tie
	Win
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "tie"
	}
}

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Outcome Outcome
	Margin  float64 // game-specific: points ahead in War, hand value ahead in Blackjack
	Length  int     // rounds or turns played
	Seed    int64   // RNG seed for this game (for replay)
	Reason  string  // how the game ended, e.g. "dealer bust" or "deck empty"
}

// Statistics accumulates results across many games
type Statistics struct {
	Games  int
	Wins   int
	Losses int
	Ties   int

	SumNet  float64 // +1 win, 0 tie, -1 loss
	SumNet2 float64 // Sum of squares for variance calculation

	Values []float64 // margins, kept for median/percentile calculation

	SumLength int
	MaxLength int

	Reasons map[string]int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	net := float64(result.Outcome)
	s.Games++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, result.Margin)

	switch result.Outcome {
	case Win:
		s.Wins++
	case Loss:
		s.Losses++
	default:
		s.Ties++
	}

	s.SumLength += result.Length
	if result.Length > s.MaxLength {
		s.MaxLength = result.Length
	}

	if result.Reason != "" {
		if s.Reasons == nil {
			s.Reasons = make(map[string]int)
		}
		s.Reasons[result.Reason]++
	}
}

// Merge folds other into s, e.g. to combine separate simulation runs
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.SumLength += other.SumLength
	if other.MaxLength > s.MaxLength {
		s.MaxLength = other.MaxLength
	}
	for reason, n := range other.Reasons {
		if s.Reasons == nil {
			s.Reasons = make(map[string]int)
		}
		s.Reasons[reason] += n
	}
}

// Mean returns the average net result per game (+1 win, -1 loss)
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumNet / float64(s.Games)
}

// Variance returns the sample variance of the net results
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the net results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// MeanLength returns the average number of rounds or turns per game
func (s *Statistics) MeanLength() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumLength) / float64(s.Games)
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the tallies are consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if s.Wins+s.Losses+s.Ties != s.Games {
		return fmt.Errorf("outcomes (%d+%d+%d) do not match games (%d)",
			s.Wins, s.Losses, s.Ties, s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if net := float64(s.Wins - s.Losses); math.Abs(net-s.SumNet) > 1e-6 {
		return fmt.Errorf("net mismatch: wins-losses=%.0f, SumNet=%.6f", net, s.SumNet)
	}
	return nil
}
