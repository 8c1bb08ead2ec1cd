package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/tui/styles"
)

// ConfirmModal is the yes/no prompt for destructive actions. Delete is
// two-phase: the request only shows this modal, and the repository call
// happens on explicit confirmation.
type ConfirmModal struct {
	visible bool
	book    domain.Book
}

// Show displays the prompt for the given book.
func (m *ConfirmModal) Show(book domain.Book) {
	m.visible = true
	m.book = book
}

// Hide dismisses the prompt.
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the prompt is shown.
func (m ConfirmModal) IsVisible() bool { return m.visible }

// Book returns the book pending confirmation.
func (m ConfirmModal) Book() domain.Book { return m.book }

// Update handles input, returns (modal, confirmed, dismissed)
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	if !m.visible {
		return m, false, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false, false
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.Hide()
		return m, true, false
	case "n", "N", "esc":
		m.Hide()
		return m, false, true
	}
	return m, false, false
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	question := fmt.Sprintf("Delete %q by %s?", m.book.Title, m.book.Author)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Width(modalWidth).Render("Confirm Delete"),
		"",
		lipgloss.NewStyle().Width(modalWidth).Render(question),
		"",
		styles.DimStyle.Render("y delete · n cancel"),
	)
	return styles.ActiveBorder.BorderForeground(styles.Red).Padding(1, 2).Render(body)
}
