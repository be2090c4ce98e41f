package main

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/Carmen-Shannon/oxy-globe/predict"
)

// maxQueryLength caps the typed location in runes.
const maxQueryLength = 64

// searchInput is the single-line location field typed into the window.
type searchInput struct {
	mu    *sync.Mutex
	query []rune
}

func newSearchInput() *searchInput {
	return &searchInput{mu: &sync.Mutex{}}
}

// Type appends a printable rune. It reports whether the text changed.
func (in *searchInput) Type(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.query) >= maxQueryLength {
		return false
	}
	in.query = append(in.query, r)
	return true
}

// Backspace removes the last rune. It reports whether the text changed.
func (in *searchInput) Backspace() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.query) == 0 {
		return false
	}
	in.query = in.query[:len(in.query)-1]
	return true
}

// Take returns the trimmed text and clears the field.
func (in *searchInput) Take() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	q := strings.TrimSpace(string(in.query))
	in.query = in.query[:0]
	return q
}

// Clear empties the field.
func (in *searchInput) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.query = in.query[:0]
}

func (in *searchInput) String() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return string(in.query)
}

// windowTitle renders the search state into the window title.
func windowTitle(base, typed string, s predict.Snapshot) string {
	switch {
	case s.Phase == predict.PhaseIdle:
		return fmt.Sprintf("%s - search: %s_", base, typed)
	case s.Result == nil:
		return fmt.Sprintf("%s - searching %s...", base, s.Query)
	}

	title := fmt.Sprintf("%s - %s %s°C %s", base, s.Result.Location, s.Result.Temperature, s.Result.Condition)
	if s.MarkerVisible {
		title += fmt.Sprintf(" (pinned at %s)", s.Target.Name)
	}
	return title
}
