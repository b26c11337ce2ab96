// Package terms supplies the terms-and-conditions text that gates the
// organizer step.  The wizard treats the text as opaque: it only displays
// it and requires the organizer to agree.  Provider is a passive read-only
// collaborator; implementations decide where the text lives and how change
// notifications reach interested callers.
package terms

import (
	"context"
	"sync"
)

// DefaultText is shown until an administrator configures real terms.
const DefaultText = "No terms and conditions configured yet. Admin must configure them first."

// Provider yields the current terms text and optionally streams updates.
type Provider interface {
	// Current returns the terms text to display right now.
	Current(ctx context.Context) (string, error)
	// Watch invokes fn for every subsequent change until ctx is cancelled.
	// Implementations without a change feed may return immediately.
	Watch(ctx context.Context, fn func(string)) error
}

// Updater is implemented by providers that additionally allow
// administrative replacement of the text.  Organizer-facing code only ever
// sees Provider.
type Updater interface {
	Update(ctx context.Context, text string) error
}

// Static is a fixed-text Provider used in tests and as the fallback when no
// shared store is available.  Set swaps the text and notifies watchers.
type Static struct {
	mu       sync.RWMutex
	text     string
	watchers []func(string)
}

// NewStatic constructs a Static provider; empty text falls back to
// DefaultText.
func NewStatic(text string) *Static {
	if text == "" {
		text = DefaultText
	}
	return &Static{text: text}
}

// Current returns the configured text.
func (s *Static) Current(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text, nil
}

// Watch registers fn for future Set calls.  The registration lives for the
// life of the provider; Static is meant for tests where that is fine.
func (s *Static) Watch(_ context.Context, fn func(string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
	return nil
}

// Update replaces the text, satisfying Updater.
func (s *Static) Update(_ context.Context, text string) error {
	s.Set(text)
	return nil
}

// Set replaces the text and notifies watchers synchronously.
func (s *Static) Set(text string) {
	s.mu.Lock()
	s.text = text
	watchers := make([]func(string), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()
	for _, fn := range watchers {
		fn(text)
	}
}
