package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"scopone-game/internal/shared"
	"scopone-game/internal/types"
)

// Interactive asks a human for every decision. The sorted hand (or the capture options)
// is printed with indices and an index is read back; bad input is rejected and asked again.
type Interactive struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewInteractive reads selections from in and writes prompts to out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ChooseCard shows table and sorted hand and reads the index of the card to lay.
// The last card in hand is played without asking.
func (h *Interactive) ChooseCard(p *shared.Player, table []shared.Card) (shared.Card, error) {
	hand := shared.Sorted(p.Hand)
	if len(hand) == 1 {
		return hand[0], nil
	}

	fmt.Fprintf(h.out, "\nWaiting for %s...\n", p.Name)
	fmt.Fprintf(h.out, "Table: %s\n", shared.FormatCards(table))
	fmt.Fprintf(h.out, "Hand:  %s\n", indexed(hand))

	idx, err := h.prompt("Enter chosen card index: ", len(hand))
	if err != nil {
		return shared.Card{}, err
	}
	return hand[idx], nil
}

// ChooseCapture lists the legal captures and reads the index of the one to take.
func (h *Interactive) ChooseCapture(p *shared.Player, played shared.Card, options [][]shared.Card) ([]shared.Card, error) {
	if len(options) == 1 {
		return options[0], nil
	}

	fmt.Fprintf(h.out, "%s can capture with %s:\n", p.Name, played)
	for i, opt := range options {
		fmt.Fprintf(h.out, "  %d: %s\n", i, shared.FormatCards(opt))
	}

	idx, err := h.prompt("Enter chosen capture index: ", len(options))
	if err != nil {
		return nil, err
	}
	return options[idx], nil
}

// prompt keeps asking until a valid index in [0, n) is read or input ends.
func (h *Interactive) prompt(label string, n int) (int, error) {
	for {
		fmt.Fprint(h.out, label)
		idx, err := h.readIndex(n)
		if err == nil {
			return idx, nil
		}
		if !types.IsGameError(err, types.ErrInvalidSelection) {
			return 0, err
		}
		fmt.Fprintf(h.out, "Invalid selection: %v\n", err)
	}
}

// readIndex parses one line as an index in [0, n).
func (h *Interactive) readIndex(n int) (int, error) {
	if !h.in.Scan() {
		cause := h.in.Err()
		if cause == nil {
			cause = io.EOF
		}
		return 0, types.WrapError(types.ErrInputClosed, "reading selection", cause)
	}

	text := strings.TrimSpace(h.in.Text())
	idx, err := strconv.Atoi(text)
	if err != nil {
		return 0, types.WrapError(types.ErrInvalidSelection, fmt.Sprintf("%q is not a number", text), err)
	}
	if idx < 0 || idx >= n {
		return 0, types.Errorf(types.ErrInvalidSelection, "index %d out of range 0..%d", idx, n-1)
	}
	return idx, nil
}

func indexed(cards []shared.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%d:%s", i, c)
	}
	return strings.Join(parts, "  ")
}
