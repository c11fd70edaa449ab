package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIndex is the benchmark shown by the index action.
const DefaultIndex = "^XU100"

// ErrEmptyWatchlist is returned when a watchlist file lists no symbols.
var ErrEmptyWatchlist = errors.New("watchlist has no symbols")

// Watchlist is the set of symbols the menu, ingest and tracking work on.
type Watchlist struct {
	Symbols []string `yaml:"symbols"`
	Index   string   `yaml:"index"`
}

// DefaultWatchlist returns the built-in Borsa Istanbul list.
func DefaultWatchlist() Watchlist {
	return Watchlist{
		Symbols: []string{
			"THYAO.IS", "GARAN.IS", "AKBNK.IS", "ASELS.IS", "KRDMD.IS", "SASA.IS",
			"EREGL.IS", "KCHOL.IS", "TUPRS.IS", "BIMAS.IS", "KAYSE.IS",
		},
		Index: DefaultIndex,
	}
}

// LoadWatchlist reads a YAML watchlist from path. An empty path yields the default list.
//
//	symbols: [THYAO.IS, GARAN.IS]
//	index: ^XU100
func LoadWatchlist(path string) (Watchlist, error) {
	if path == "" {
		return DefaultWatchlist(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Watchlist{}, fmt.Errorf("read watchlist: %w", err)
	}
	var wl Watchlist
	if err := yaml.Unmarshal(raw, &wl); err != nil {
		return Watchlist{}, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	return wl.normalize()
}

// normalize trims and upper-cases codes and drops blanks and duplicates.
func (w Watchlist) normalize() (Watchlist, error) {
	seen := make(map[string]bool, len(w.Symbols))
	out := make([]string, 0, len(w.Symbols))
	for _, s := range w.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return Watchlist{}, ErrEmptyWatchlist
	}
	w.Symbols = out
	w.Index = strings.TrimSpace(w.Index)
	if w.Index == "" {
		w.Index = DefaultIndex
	}
	return w, nil
}
