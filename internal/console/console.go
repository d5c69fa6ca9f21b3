package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/randutil"
)

// ErrInputClosed is returned when the input ends while a game is waiting for a choice
var ErrInputClosed = errors.New("input closed")

// HiddenCard is shown in place of a face-down card
const HiddenCard = "??"

// Options configures a Console
type Options struct {
	In                io.Reader
	Out               io.Writer
	Color             bool
	ShowOpponentCards bool
	Rng               randutil.Source // nil seeds from the clock
	Logger            *log.Logger
	Deck              []deck.Card // fixed deck order for Blackjack and War; nil shuffles
	Rounds            int         // Blackjack games per session; 0 asks
}

// Console plays games against a person over line-oriented text I/O
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	styles styles
	opts   Options
	rng    randutil.Source
	logger *log.Logger
}

// New creates a console
func New(opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rng := opts.Rng
	if rng == nil {
		rng = randutil.NewFromSeed(0)
	}

	return &Console{
		in:     bufio.NewScanner(opts.In),
		out:    opts.Out,
		styles: newStyles(opts.Out, opts.Color),
		opts:   opts,
		rng:    rng,
		logger: opts.Logger,
	}
}

// ReadGameCount asks for a positive whole number, re-prompting until one is given
func (c *Console) ReadGameCount(prompt string) (int, error) {
	for {
		line, err := c.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n > 0 {
			return n, nil
		}
		c.println(c.styles.failure.Render("Please enter a positive whole number."))
	}
}

// ask prints a prompt and reads one line
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, c.styles.prompt.Render(prompt))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(c.out)
		return "", ErrInputClosed
	}
	return c.in.Text(), nil
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) newDeck() *deck.Deck {
	if c.opts.Deck != nil {
		return deck.NewDeckFrom(c.opts.Deck...)
	}
	return deck.NewShuffledDeck(c.rng)
}

// inputClosed reports a closed input stream to the player
func (c *Console) inputClosed(err error) {
	if errors.Is(err, ErrInputClosed) {
		c.println(c.styles.warning.Render("Input closed, leaving the table."))
	}
}

func (c *Console) card(card deck.Card) string {
	if card.IsRed() {
		return c.styles.redCard.Render(card.String())
	}
	return c.styles.blackCard.Render(card.String())
}

func (c *Console) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = c.card(card)
	}
	return strings.Join(parts, " ")
}

func (c *Console) hidden() string {
	return c.styles.hidden.Render(HiddenCard)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
