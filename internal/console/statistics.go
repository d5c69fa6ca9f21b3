package console

import (
	"fmt"
	"sort"

	"github.com/lox/gamecenter/internal/statistics"
)

// PrintStatistics writes a simulation summary
func (c *Console) PrintStatistics(game string, stats *statistics.Statistics) {
	c.println(c.styles.header.Render(fmt.Sprintf(" %s: %d games ", game, stats.Games)))

	pct := func(n int) float64 { return 100 * float64(n) / float64(stats.Games) }
	c.println(c.styles.success.Render(fmt.Sprintf("Wins:   %6d (%5.1f%%)", stats.Wins, pct(stats.Wins))))
	c.println(c.styles.failure.Render(fmt.Sprintf("Losses: %6d (%5.1f%%)", stats.Losses, pct(stats.Losses))))
	c.println(c.styles.warning.Render(fmt.Sprintf("Ties:   %6d (%5.1f%%)", stats.Ties, pct(stats.Ties))))

	lo, hi := stats.ConfidenceInterval95()
	c.printf("Net per game: %+.3f (95%% CI %+.3f to %+.3f)\n", stats.Mean(), lo, hi)
	c.printf("Margin: median %+.1f, p10 %+.1f, p90 %+.1f\n",
		stats.Median(), stats.Percentile(0.1), stats.Percentile(0.9))
	c.printf("Length: mean %.1f, max %d\n", stats.MeanLength(), stats.MaxLength)

	reasons := make([]string, 0, len(stats.Reasons))
	for r := range stats.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		c.println(c.styles.info.Render(fmt.Sprintf("  %-20s %d", r, stats.Reasons[r])))
	}
}
