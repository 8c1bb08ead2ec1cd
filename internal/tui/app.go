package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkvxness/shelftui/internal/catalog"
	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/notify"
	"github.com/nkvxness/shelftui/internal/search"
	"github.com/nkvxness/shelftui/internal/tui/components"
	"github.com/nkvxness/shelftui/internal/tui/styles"
)

// ListState represents the state of the catalog list
type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListError
)

// Model is the main Bubble Tea model: the catalog view-model. All state
// mutation happens inside Update on the Tea loop; remote work runs as
// commands whose results come back as messages.
type Model struct {
	repo  *catalog.Repository
	notes *notify.Manager
	keys  KeyMap
	fuzzy bool

	// List state machine
	state    ListState
	listErr  error
	books    []domain.Book
	cursor   domain.PageCursor
	fetchSeq int
	selected int

	// Search (client-side filter of the loaded page)
	searchInput textinput.Model
	searching   bool
	query       string

	// Edit sub-state: nil = idle
	session *EditSession

	// Modals
	form    components.BookForm
	confirm components.ConfirmModal

	// Toasts
	toasts   []notify.Notification
	notifyCh <-chan struct{}

	width  int
	height int
}

// NewModel creates the catalog model. notifyCh is the channel the notify
// manager's observer signals on.
func NewModel(repo *catalog.Repository, notes *notify.Manager, notifyCh <-chan struct{}, pageSize int, fuzzy bool) Model {
	input := textinput.New()
	input.Placeholder = "title, author or ISBN..."
	input.Prompt = "/ "
	input.PromptStyle = styles.AccentStyle
	input.CharLimit = 60
	input.Width = 32

	return Model{
		repo:        repo,
		notes:       notes,
		keys:        DefaultKeyMap(),
		fuzzy:       fuzzy,
		state:       ListLoading,
		cursor:      domain.PageCursor{Page: 1, PageSize: pageSize},
		searchInput: input,
		form:        components.NewBookForm(),
		notifyCh:    notifyCh,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadBooksCmd(m.repo, m.cursor.Page, m.cursor.PageSize, m.fetchSeq),
		waitForInvalidationCmd(m.repo.Events()),
		waitForNotifyCmd(m.notifyCh),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case BooksLoadedMsg:
		// Stale-response discard: a fetch issued before the latest page
		// change must not overwrite newer state.
		if msg.Seq != m.fetchSeq {
			return m, nil
		}
		m.state = ListLoaded
		m.listErr = nil
		m.books = msg.Page.Books
		m.cursor.SetTotal(msg.Page.TotalBooks)
		if m.selected >= len(m.books) {
			m.selected = max(0, len(m.books)-1)
		}
		// Deletions can shrink the collection under the cursor; when the
		// clamp moved us off the fetched page, fetch the right one.
		if m.cursor.Page != msg.PageNum {
			return m, m.refetch()
		}
		return m, nil

	case ListErrMsg:
		if msg.Seq != m.fetchSeq {
			return m, nil
		}
		m.state = ListError
		m.listErr = msg.Err
		return m, nil

	case InvalidatedMsg:
		// Refetch with the cursor and query as they are *now*, not as
		// they were when the mutation started.
		return m, tea.Batch(m.refetch(), waitForInvalidationCmd(m.repo.Events()))

	case NotificationsChangedMsg:
		m.toasts = m.notes.Active()
		return m, waitForNotifyCmd(m.notifyCh)

	case BookCreatedMsg:
		m.form.Hide()
		return m, nil

	case BookUpdatedMsg:
		// Save success destroys the edit session; the invalidation event
		// triggers the refetch.
		m.session = nil
		m.form.Hide()
		return m, nil

	case BookDeletedMsg:
		return m, nil

	case MutationErrMsg:
		// Failure leaves the edit session and form intact for retry.
		if m.form.IsVisible() {
			m.form.SetError(msg.Err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Everything else (cursor blinks etc.) goes to the focused input
	if m.form.IsVisible() {
		var cmd tea.Cmd
		m.form, cmd, _ = m.form.Update(msg)
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal layers take priority over list keys
	if m.form.IsVisible() {
		return m.updateForm(msg)
	}
	if m.confirm.IsVisible() {
		var confirmed bool
		m.confirm, confirmed, _ = m.confirm.Update(msg)
		if confirmed {
			return m, deleteBookCmd(m.repo, m.confirm.Book().ID)
		}
		return m, nil
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visibleBooks())-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		// Pagination is suppressed while a search query is active;
		// search only covers the loaded page.
		if m.query == "" {
			return m, m.setPage(m.cursor.Page - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.query == "" {
			return m, m.setPage(m.cursor.Page + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Add):
		m.form.ShowCreate()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Delete):
		if book, ok := m.selectedBook(); ok {
			m.confirm.Show(book)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.repo.InvalidateCache()
		return m, m.setPage(m.cursor.Page)

	case key.Matches(msg, m.keys.Dismiss):
		if len(m.toasts) > 0 {
			m.notes.Dismiss(m.toasts[0].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.query != "" {
			m.clearSearch()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wasEditing := m.form.IsEditing()

	var cmd tea.Cmd
	var submitted bool
	m.form, cmd, submitted = m.form.Update(msg)

	if !m.form.IsVisible() && wasEditing {
		// Cancel destroys the session unconditionally
		m.session = nil
		return m, cmd
	}

	if submitted {
		return m.submitForm()
	}

	// Keep the edit session's draft in step with the form fields
	if m.session != nil && m.form.IsEditing() {
		title, author, isbnValue, published := m.form.Values()
		m.session.SetField(FieldTitle, title)
		m.session.SetField(FieldAuthor, author)
		m.session.SetField(FieldISBN, isbnValue)
		m.session.SetField(FieldPublished, published)
	}

	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.IsEditing() {
		if m.session == nil {
			m.form.Hide()
			return m, nil
		}
		title, author, isbnValue, published := m.form.Values()
		m.session.SetField(FieldTitle, title)
		m.session.SetField(FieldAuthor, author)
		m.session.SetField(FieldISBN, isbnValue)
		m.session.SetField(FieldPublished, published)

		patch, err := m.session.Patch()
		if err != nil {
			m.form.SetError(err.Error())
			return m, nil
		}
		if patch.IsEmpty() {
			// Nothing changed; treat as a cancel
			m.session = nil
			m.form.Hide()
			return m, nil
		}
		return m, saveBookCmd(m.repo, m.session.BookID, patch)
	}

	draft, err := m.form.Draft()
	if err != nil {
		m.form.SetError("published date must be YYYY-MM-DD")
		return m, nil
	}
	return m, createBookCmd(m.repo, draft)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSearch()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	if m.selected >= len(m.visibleBooks()) {
		m.selected = 0
	}
	return m, cmd
}

func (m *Model) clearSearch() {
	m.query = ""
	m.searching = false
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.selected = 0
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	if m.session != nil {
		// One edit at a time
		m.notes.Post("Finish the current edit first", notify.SeverityWarning)
		return m, nil
	}
	book, ok := m.selectedBook()
	if !ok {
		return m, nil
	}
	m.session = NewEditSession(book)
	m.form.ShowEdit(m.session.Title, m.session.Author, m.session.ISBN, m.session.Published)
	return m, nil
}

// setPage clamps n against the last known total and triggers a refetch.
func (m *Model) setPage(n int) tea.Cmd {
	m.cursor.Page = m.cursor.Clamp(n)
	return m.refetch()
}

// refetch issues a list fetch for the current cursor. Bumping the sequence
// invalidates any response still in flight for an earlier fetch.
func (m *Model) refetch() tea.Cmd {
	m.state = ListLoading
	m.fetchSeq++
	return loadBooksCmd(m.repo, m.cursor.Page, m.cursor.PageSize, m.fetchSeq)
}

// visibleBooks applies the active search query to the loaded page.
func (m Model) visibleBooks() []domain.Book {
	if m.query == "" {
		return m.books
	}
	if m.fuzzy {
		return search.FilterFuzzy(m.books, m.query)
	}
	return search.Filter(m.books, m.query)
}

func (m Model) selectedBook() (domain.Book, bool) {
	visible := m.visibleBooks()
	if len(visible) == 0 || m.selected < 0 || m.selected >= len(visible) {
		return domain.Book{}, false
	}
	return visible[m.selected], true
}
