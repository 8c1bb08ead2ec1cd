package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkvxness/shelftui/internal/catalog"
	"github.com/nkvxness/shelftui/internal/domain"
)

// Command factories for async operations. Every remote call runs in its
// own tea.Cmd goroutine and re-enters the model as a message.

const requestTimeout = 30 * time.Second

// loadBooksCmd fetches one list page. seq ties the response to the fetch
// that issued it; the model drops responses whose seq is no longer current.
func loadBooksCmd(repo *catalog.Repository, page, pageSize, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		p, err := repo.List(ctx, page, pageSize)
		if err != nil {
			return ListErrMsg{Err: err, Seq: seq}
		}
		return BooksLoadedMsg{Page: p, PageNum: page, Seq: seq}
	}
}

// createBookCmd submits a new book
func createBookCmd(repo *catalog.Repository, draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		book, err := repo.Create(ctx, draft)
		if err != nil {
			return MutationErrMsg{Err: err, Op: catalog.OpCreate}
		}
		return BookCreatedMsg{Book: book}
	}
}

// saveBookCmd submits a partial update for one book
func saveBookCmd(repo *catalog.Repository, id int64, patch domain.Patch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		book, err := repo.Update(ctx, id, patch)
		if err != nil {
			return MutationErrMsg{Err: err, Op: catalog.OpUpdate}
		}
		return BookUpdatedMsg{Book: book}
	}
}

// deleteBookCmd deletes a confirmed book
func deleteBookCmd(repo *catalog.Repository, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := repo.Delete(ctx, id); err != nil {
			return MutationErrMsg{Err: err, Op: catalog.OpDelete}
		}
		return BookDeletedMsg{ID: id}
	}
}

// waitForInvalidationCmd blocks on the repository's invalidation stream.
// The model re-issues it after every receipt to keep the subscription live.
func waitForInvalidationCmd(events <-chan catalog.Invalidation) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return InvalidatedMsg{Event: ev}
	}
}

// waitForNotifyCmd blocks until the toast set changes.
func waitForNotifyCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationsChangedMsg{}
	}
}
