package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/isbn"
	"github.com/nkvxness/shelftui/internal/tui/styles"
)

// Form field order
const (
	fieldTitle = iota
	fieldAuthor
	fieldISBN
	fieldPublished
	fieldCount
)

// BookForm is the modal for adding or editing a book. ISBN feedback is
// computed on every keystroke, like the hint under a web form field.
type BookForm struct {
	visible bool
	editing bool // false = create
	title   string
	inputs  [fieldCount]textinput.Model
	focus   int
	err     string // server-side or submit error, shown under the fields
}

// NewBookForm creates the form with its inputs pre-configured.
func NewBookForm() BookForm {
	var f BookForm

	labels := [fieldCount]string{"Title", "Author", "ISBN-13", "Published"}
	placeholders := [fieldCount]string{
		"The Hobbit",
		"J.R.R. Tolkien",
		"978-3-16-148410-0",
		"1937-09-21",
	}
	for i := 0; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 34
		ti.Prompt = labels[i] + ": "
		ti.PromptStyle = styles.SubtitleStyle
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	f.inputs[fieldISBN].CharLimit = 17 // 13 digits + 4 hyphens

	return f
}

// ShowCreate opens the form empty, with today's date pre-filled.
func (f *BookForm) ShowCreate() {
	f.reset("Add Book", false)
	f.inputs[fieldPublished].SetValue(time.Now().Format("2006-01-02"))
}

// ShowEdit opens the form seeded with the draft values.
func (f *BookForm) ShowEdit(title, author, isbnValue, published string) {
	f.reset("Edit Book", true)
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldAuthor].SetValue(author)
	f.inputs[fieldISBN].SetValue(isbnValue)
	f.inputs[fieldPublished].SetValue(published)
}

func (f *BookForm) reset(title string, editing bool) {
	f.visible = true
	f.editing = editing
	f.title = title
	f.err = ""
	f.focus = 0
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[0].Focus()
}

// Hide dismisses the form.
func (f *BookForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown.
func (f BookForm) IsVisible() bool { return f.visible }

// IsEditing returns whether the form is in edit (vs. create) mode.
func (f BookForm) IsEditing() bool { return f.editing }

// SetError displays a submit failure under the fields, keeping the form
// (and any edit session behind it) alive for retry.
func (f *BookForm) SetError(msg string) { f.err = msg }

// Values returns the current field values.
func (f BookForm) Values() (title, author, isbnValue, published string) {
	return f.inputs[fieldTitle].Value(),
		f.inputs[fieldAuthor].Value(),
		f.inputs[fieldISBN].Value(),
		f.inputs[fieldPublished].Value()
}

// Draft assembles a create payload from the current values. The published
// date is parsed here; the repository validates the rest.
func (f BookForm) Draft() (domain.Draft, error) {
	title, author, isbnValue, published := f.Values()
	when, err := time.Parse("2006-01-02", strings.TrimSpace(published))
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		ISBN:      isbnValue,
		Published: when,
	}, nil
}

// Update handles input events, returns (form, cmd, submitted)
func (f BookForm) Update(msg tea.Msg) (BookForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return f, nil, true
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *BookForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// isbnFeedback returns the live validation hint for the ISBN field.
func (f BookForm) isbnFeedback() string {
	value := f.inputs[fieldISBN].Value()
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if err := isbn.Validate(value); err != nil {
		return styles.WarningStyle.Render(err.Error())
	}
	return styles.SuccessStyle.Render("valid: " + isbn.Format(value))
}

// View renders the form modal.
func (f BookForm) View() string {
	if !f.visible {
		return ""
	}

	const modalWidth = 48

	header := styles.TitleStyle.Width(modalWidth).Render(f.title)

	var rows []string
	rows = append(rows, header, "")
	for i := 0; i < fieldCount; i++ {
		rows = append(rows, f.inputs[i].View())
		if i == fieldISBN {
			if hint := f.isbnFeedback(); hint != "" {
				rows = append(rows, "  "+hint)
			}
		}
	}
	if f.err != "" {
		rows = append(rows, "", styles.ErrorStyle.Width(modalWidth).Render(f.err))
	}
	rows = append(rows, "", styles.DimStyle.Render("enter save · tab next field · esc cancel"))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.ActiveBorder.Padding(1, 2).Render(body)
}
