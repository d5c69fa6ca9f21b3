package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Choice is a menu entry
type Choice int

const (
	Blackjack Choice = iota
	OldMaid
	War
	Exit
)

// Choices lists the entries in display order
var Choices = []Choice{Blackjack, OldMaid, War, Exit}

// String returns the label shown for a choice
func (c Choice) String() string {
	switch c {
	case Blackjack:
		return "Blackjack"
	case OldMaid:
		return "Old Maid"
	case War:
		return "War"
	default:
		return "Exit"
	}
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "play"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "exit"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))
)

// Model is the bubbletea model for the game selection menu
type Model struct {
	cursor int
	chosen Choice
	done   bool
	help   help.Model
}

// NewModel creates a menu with the cursor on the first game
func NewModel() Model {
	return Model{help: help.New()}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m.choose(Exit)
	case key.Matches(keyMsg, keys.Up):
		m.cursor = (m.cursor + len(Choices) - 1) % len(Choices)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = (m.cursor + 1) % len(Choices)
	case key.Matches(keyMsg, keys.Select):
		return m.choose(Choices[m.cursor])
	default:
		// number shortcuts 1..n
		s := keyMsg.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(Choices) {
			return m.choose(Choices[s[0]-'1'])
		}
	}
	return m, nil
}

func (m Model) choose(c Choice) (tea.Model, tea.Cmd) {
	m.chosen = c
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Game Center"))
	b.WriteString("\n\n")
	for i, c := range Choices {
		line := fmt.Sprintf("%d. %s", i+1, c)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit}))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the selection once the menu has finished
func (m Model) Choice() (Choice, bool) {
	return m.chosen, m.done
}

// Run shows the menu until a choice is made. Closing the program without a
// selection counts as Exit.
func Run(in io.Reader, out io.Writer) (Choice, error) {
	program := tea.NewProgram(NewModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return Exit, fmt.Errorf("menu: %w", err)
	}

	if m, ok := final.(Model); ok {
		if c, done := m.Choice(); done {
			return c, nil
		}
	}
	return Exit, nil
}
