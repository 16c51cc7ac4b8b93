// Package paginate drives repeated fetch → parse → merge cycles over a
// cursor-based listing. A Session owns the accumulated items and cursor of
// one active list view; nothing is shared between sessions.
package paginate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	catalog "github.com/tunefeed/catalog"
)

// DefaultPrefetchPages bounds how many pages Prefetch loads ahead of explicit
// user action.
const DefaultPrefetchPages = 4

// FetchFunc retrieves one page for the given continuation token. The first
// page of a session is requested with an empty token. Implementations wrap
// the collaborator HTTP client plus the parser.
type FetchFunc[T any] func(ctx context.Context, token string) (catalog.Page[T], error)

// IdentityFunc extracts the dedup identity of an item.
type IdentityFunc[T any] func(T) string

// Session accumulates the pages of one paginated listing with dedup,
// monotonic exhaustion and single-flight fetching. Methods are safe for
// concurrent use; concurrent LoadMore calls collapse into one fetch.
type Session[T any] struct {
	fetch    FetchFunc[T]
	identity IdentityFunc[T]
	log      *slog.Logger
	id       string
	prefetch int

	group singleflight.Group

	mu    sync.Mutex
	items []T
	seen  map[string]struct{}
	next  string // empty before the first fetch and after exhaustion
	done  bool
}

// SessionOption configures a Session.
type SessionOption[T any] func(*Session[T])

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger[T any](l *slog.Logger) SessionOption[T] {
	return func(s *Session[T]) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPrefetchPages overrides the Prefetch page budget.
func WithPrefetchPages[T any](n int) SessionOption[T] {
	return func(s *Session[T]) {
		if n > 0 {
			s.prefetch = n
		}
	}
}

// NewSession creates a pagination session over fetch, deduplicating by
// identity.
func NewSession[T any](fetch FetchFunc[T], identity IdentityFunc[T], opts ...SessionOption[T]) *Session[T] {
	s := &Session[T]{
		fetch:    fetch,
		identity: identity,
		log:      slog.Default(),
		id:       uuid.NewString(),
		prefetch: DefaultPrefetchPages,
		seen:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's correlation id, used in logs.
func (s *Session[T]) ID() string { return s.id }

// Items returns a copy of the accumulated items in arrival order.
func (s *Session[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// HasMore reports whether a further page can still be requested. Once false
// it stays false for the life of the session, even if LoadMore is called
// again.
func (s *Session[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.done
}

// LoadMore fetches and merges the next page, returning how many new items it
// added. An exhausted session returns (0, nil) without fetching. Fetch errors
// leave the accumulated items and cursor untouched, so the call is
// retryable. Cancellation is checked before the fetch, not mid-parse.
func (s *Session[T]) LoadMore(ctx context.Context) (int, error) {
	v, err, _ := s.group.Do("page", func() (any, error) {
		return s.loadMore(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *Session[T]) loadMore(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return 0, nil
	}
	token := s.next
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	page, err := s.fetch(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("paginate: fetch page: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return 0, nil
	}
	added := 0
	for _, item := range page.Items {
		id := s.identity(item)
		if _, dup := s.seen[id]; dup {
			continue
		}
		s.seen[id] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	s.next = page.Continuation
	if page.Continuation == "" {
		s.done = true
	}
	// A page that adds nothing new means the server is repeating itself;
	// stop regardless of the token it reported.
	if added == 0 {
		s.done = true
	}
	s.log.Debug("paginate: merged page",
		"session", s.id, "added", added, "total", len(s.items), "hasMore", !s.done)
	return added, nil
}

// Prefetch eagerly loads up to the session's page budget (default
// DefaultPrefetchPages), checking ctx between pages. It stops early on
// exhaustion or error; the error, if any, is returned after the pages already
// merged are kept.
func (s *Session[T]) Prefetch(ctx context.Context) error {
	for i := 0; i < s.prefetch; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.HasMore() {
			return nil
		}
		if _, err := s.LoadMore(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Merge appends to acc the items of page whose identity is not already
// present, preserving acc's order and page's internal order, and returns the
// merged slice with the count of newly added items. Exposed for callers that
// manage their own accumulation.
func Merge[T any](acc, page []T, identity IdentityFunc[T]) ([]T, int) {
	seen := make(map[string]struct{}, len(acc))
	for _, item := range acc {
		seen[identity(item)] = struct{}{}
	}
	added := 0
	for _, item := range page {
		id := identity(item)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		acc = append(acc, item)
		added++
	}
	return acc, added
}
