package shared

import "log"

// Capture describes the outcome of laying one card against the table.
type Capture struct {
	Played Card   `json:"played"`
	Taken  []Card `json:"taken,omitempty"` // Table cards captured; empty when the card was laid down
	Table  []Card `json:"table"`           // Table after the play
	Sweep  bool   `json:"sweep"`           // Capture emptied the table
}

// Captured reports whether the play took any cards.
func (c Capture) Captured() bool {
	return len(c.Taken) > 0
}

// CaptureChooser picks one of several legal capture options.
type CaptureChooser func(options [][]Card) ([]Card, error)

// FirstOption is the canonical chooser: it always takes the first option found.
func FirstOption(options [][]Card) ([]Card, error) {
	return options[0], nil
}

// CaptureOptions lists every subset of the table whose ranks sum to the played rank.
// Subsets are enumerated by increasing size, then in left-to-right table order, so
// options[0] is the canonical capture. A singleton match therefore always comes first.
func CaptureOptions(table []Card, played Card) [][]Card {
	var options [][]Card
	n := len(table)
	for size := 1; size <= n; size++ {
		combinations(n, size, func(idx []int) {
			sum := 0
			for _, i := range idx {
				sum += table[i].Rank
			}
			if sum <= 0 || sum > MaxRank || sum != played.Rank {
				return
			}
			option := make([]Card, len(idx))
			for k, i := range idx {
				option[k] = table[i]
			}
			options = append(options, option)
		})
	}
	return options
}

// combinations visits every k-combination of [0, n) in lexicographic order.
func combinations(n, k int, visit func(idx []int)) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// ResolveCapture plays card against table. Capturing is mandatory whenever an option
// exists; choose selects among several options. The input table is not modified.
func ResolveCapture(table []Card, played Card, choose CaptureChooser) (Capture, error) {
	options := CaptureOptions(table, played)
	if len(options) == 0 {
		next := make([]Card, len(table), len(table)+1)
		copy(next, table)
		return Capture{Played: played, Table: append(next, played)}, nil
	}

	taken := options[0]
	if len(options) > 1 && choose != nil {
		chosen, err := choose(options)
		if err != nil {
			return Capture{}, err
		}
		if !containsOption(options, chosen) {
			log.Panicf("capture %s is not a legal option for %s on %s", FormatCards(chosen), played, FormatCards(table))
		}
		taken = chosen
	}

	remove := make(map[Card]bool, len(taken))
	for _, c := range taken {
		remove[c] = true
	}
	next := make([]Card, 0, len(table))
	for _, c := range table {
		if !remove[c] {
			next = append(next, c)
		}
	}
	if len(next) != len(table)-len(taken) {
		log.Panicf("capture %s is not present on table %s", FormatCards(taken), FormatCards(table))
	}

	return Capture{
		Played: played,
		Taken:  taken,
		Table:  next,
		Sweep:  len(next) == 0,
	}, nil
}

func containsOption(options [][]Card, chosen []Card) bool {
	for _, opt := range options {
		if sameCards(opt, chosen) {
			return true
		}
	}
	return false
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[Card]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if !seen[c] {
			return false
		}
	}
	return true
}
