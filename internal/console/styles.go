package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds the lipgloss styles bound to one output
type styles struct {
	header    lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	hidden    lipgloss.Style
	prompt    lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
}

func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
