// Package catalog coordinates book CRUD against the remote store: local
// validation before transmit, a per-book in-flight guard against double
// submission, cache invalidation on successful mutations, and user-facing
// outcome notifications.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/isbn"
	"github.com/nkvxness/shelftui/internal/notify"
	"github.com/nkvxness/shelftui/internal/store"
)

// Operation identifies which mutation invalidated the cache.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

// Invalidation is emitted after a successful mutation. Subscribers refetch
// with whatever cursor they hold at that moment, not one captured earlier.
type Invalidation struct {
	Op     Operation
	BookID int64
}

// createGuardKey reserves guard slot 0 for creates, which have no id yet.
// A second create while one is pending is rejected like any other overlap.
const createGuardKey int64 = 0

type notifier interface {
	Post(message string, severity notify.Severity) int
}

// Repository wraps the remote store with the client-side catalog rules.
type Repository struct {
	remote domain.BookSource
	cache  *store.PageCache
	notes  notifier
	logger *slog.Logger

	mu       sync.Mutex
	inFlight map[int64]bool

	events chan Invalidation
}

// NewRepository creates a repository. cache and notes may be nil (no
// caching / no notifications), which the tests use.
func NewRepository(remote domain.BookSource, cache *store.PageCache, notes notifier, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		remote:   remote,
		cache:    cache,
		notes:    notes,
		logger:   logger,
		inFlight: make(map[int64]bool),
		events:   make(chan Invalidation, 8),
	}
}

// Events returns the invalidation stream. The channel is buffered and
// sends never block; an unread event is dropped rather than stalling the
// mutation path.
func (r *Repository) Events() <-chan Invalidation {
	return r.events
}

// List returns the requested page, served from cache when a fresh copy
// exists and from the remote store otherwise.
func (r *Repository) List(ctx context.Context, page, pageSize int) (domain.Page, error) {
	if r.cache != nil {
		if p, ok := r.cache.GetPage(page, pageSize); ok {
			r.logger.Debug("list served from cache", "page", page)
			return p, nil
		}
	}

	p, err := r.remote.List(ctx, page, pageSize)
	if err != nil {
		r.report(err)
		return domain.Page{}, err
	}
	if r.cache != nil {
		if err := r.cache.PutPage(page, pageSize, p); err != nil {
			r.logger.Warn("failed to cache page", "page", page, "error", err)
		}
	}
	return p, nil
}

// Create validates the draft locally, canonicalizes the ISBN, and submits
// it. Validation failures are returned synchronously and never transmitted.
func (r *Repository) Create(ctx context.Context, draft domain.Draft) (domain.Book, error) {
	if err := validateDraft(draft.Title, draft.Author); err != nil {
		return domain.Book{}, err
	}
	if err := isbn.Validate(draft.ISBN); err != nil {
		return domain.Book{}, err
	}
	draft.ISBN = isbn.Format(draft.ISBN)

	if !r.acquire(createGuardKey) {
		return domain.Book{}, fmt.Errorf("%w: another book is still being added", domain.ErrConflict)
	}
	defer r.release(createGuardKey)

	book, err := r.remote.Create(ctx, draft)
	if err != nil {
		r.report(err)
		return domain.Book{}, err
	}

	r.invalidate(Invalidation{Op: OpCreate, BookID: book.ID})
	r.success(fmt.Sprintf("Added %q", book.Title))
	return book, nil
}

// Update submits a partial update for one book. When the patch carries an
// ISBN it is validated and canonicalized first.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Book, error) {
	if patch.IsEmpty() {
		return domain.Book{}, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if err := validatePresent(patch.Title, patch.Author); err != nil {
		return domain.Book{}, err
	}
	if patch.ISBN != nil {
		if err := isbn.Validate(*patch.ISBN); err != nil {
			return domain.Book{}, err
		}
		canonical := isbn.Format(*patch.ISBN)
		patch.ISBN = &canonical
	}

	if !r.acquire(id) {
		return domain.Book{}, fmt.Errorf("%w: this book is still being saved", domain.ErrConflict)
	}
	defer r.release(id)

	book, err := r.remote.Update(ctx, id, patch)
	if err != nil {
		r.report(err)
		return domain.Book{}, err
	}

	r.invalidate(Invalidation{Op: OpUpdate, BookID: id})
	r.success(fmt.Sprintf("Saved %q", book.Title))
	return book, nil
}

// Delete removes a book. Confirmation is the caller's responsibility; the
// repository only sees the confirmed request.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if !r.acquire(id) {
		return fmt.Errorf("%w: this book is still being saved", domain.ErrConflict)
	}
	defer r.release(id)

	if err := r.remote.Delete(ctx, id); err != nil {
		r.report(err)
		return err
	}

	r.invalidate(Invalidation{Op: OpDelete, BookID: id})
	r.success("Book deleted")
	return nil
}

// InvalidateCache drops cached pages without a mutation, for manual
// refresh. No event is emitted; the caller refetches itself.
func (r *Repository) InvalidateCache() {
	if r.cache != nil {
		if err := r.cache.Invalidate(); err != nil {
			r.logger.Warn("cache invalidation failed", "error", err)
		}
	}
}

// acquire takes the in-flight slot for id, returning false when a mutation
// for the same book is already pending.
func (r *Repository) acquire(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight[id] {
		return false
	}
	r.inFlight[id] = true
	return true
}

func (r *Repository) release(id int64) {
	r.mu.Lock()
	delete(r.inFlight, id)
	r.mu.Unlock()
}

func (r *Repository) invalidate(ev Invalidation) {
	if r.cache != nil {
		if err := r.cache.Invalidate(); err != nil {
			r.logger.Warn("cache invalidation failed", "error", err)
		}
	}
	select {
	case r.events <- ev:
	default:
	}
}

func (r *Repository) success(msg string) {
	if r.notes != nil {
		r.notes.Post(msg, notify.SeveritySuccess)
	}
}

// report surfaces a remote failure once through the notifier. Local
// validation errors never come through here.
func (r *Repository) report(err error) {
	if r.notes != nil {
		r.notes.Post(err.Error(), notify.SeverityError)
	}
}

func validateDraft(title, author string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author is required", domain.ErrValidation)
	}
	return nil
}

func validatePresent(title, author *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if author != nil && strings.TrimSpace(*author) == "" {
		return fmt.Errorf("%w: author is required", domain.ErrValidation)
	}
	return nil
}
