package tui

import (
	"github.com/nkvxness/shelftui/internal/catalog"
	"github.com/nkvxness/shelftui/internal/domain"
)

// Message types for the TUI

// BooksLoadedMsg signals that a list page has been loaded. Seq identifies
// the fetch that produced it so stale responses can be discarded.
type BooksLoadedMsg struct {
	Page    domain.Page
	PageNum int
	Seq     int
}

// ListErrMsg signals that a list fetch failed
type ListErrMsg struct {
	Err error
	Seq int
}

// BookCreatedMsg signals a successful create
type BookCreatedMsg struct {
	Book domain.Book
}

// BookUpdatedMsg signals a successful update
type BookUpdatedMsg struct {
	Book domain.Book
}

// BookDeletedMsg signals a successful delete
type BookDeletedMsg struct {
	ID int64
}

// MutationErrMsg signals a failed create/update/delete. The edit session,
// if any, stays alive so the user can retry or cancel.
type MutationErrMsg struct {
	Err error
	Op  catalog.Operation
}

// InvalidatedMsg signals that a mutation invalidated the cached list;
// the model refetches using its current cursor and query.
type InvalidatedMsg struct {
	Event catalog.Invalidation
}

// NotificationsChangedMsg signals that the toast set changed
type NotificationsChangedMsg struct{}
