package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/isbn"
	"github.com/nkvxness/shelftui/internal/tui/components"
	"github.com/nkvxness/shelftui/internal/tui/styles"
)

// Column widths for the book table
const (
	colTitleWidth     = 34
	colAuthorWidth    = 24
	colISBNWidth      = 18
	colPublishedWidth = 10
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderList())
	sections = append(sections, m.renderFooter())

	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Modal layers render centered over the list
	if m.form.IsVisible() {
		return m.overlay(m.form.View())
	}
	if m.confirm.IsVisible() {
		return m.overlay(m.confirm.View())
	}

	if toasts := components.Toasts(m.toasts, m.width/2); toasts != "" {
		base = lipgloss.JoinVertical(lipgloss.Left, toasts, base)
	}
	return base
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("shelftui")
	subtitle := styles.SubtitleStyle.Render("  book catalog")

	var searchView string
	if m.searching || m.query != "" {
		searchView = "  " + m.searchInput.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, title, subtitle, searchView)
}

func (m Model) renderList() string {
	switch m.state {
	case ListLoading:
		return styles.DimStyle.Padding(1, 2).Render("Loading books...")
	case ListError:
		msg := "failed to load books"
		if m.listErr != nil {
			msg = m.listErr.Error()
		}
		return styles.ErrorStyle.Padding(1, 2).Render(msg + "\n\npress r to retry")
	}

	visible := m.visibleBooks()
	if len(visible) == 0 {
		if m.query != "" {
			return styles.DimStyle.Padding(1, 2).Render(fmt.Sprintf("no books match %q on this page", m.query))
		}
		return styles.DimStyle.Padding(1, 2).Render("no books yet — press a to add one")
	}

	rows := make([]string, 0, len(visible)+1)
	rows = append(rows, styles.SubtitleStyle.Render(tableRow("TITLE", "AUTHOR", "ISBN", "PUBLISHED")))
	for i, b := range visible {
		row := tableRow(b.Title, b.Author, displayISBN(b), b.Published.Format("2006-01-02"))
		if i == m.selected {
			row = styles.SelectedRowStyle.Render(row)
		}
		rows = append(rows, row)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}

// displayISBN always shows the canonical hyphenated form
func displayISBN(b domain.Book) string {
	return isbn.Format(b.ISBN)
}

func tableRow(title, author, isbnText, published string) string {
	return pad(title, colTitleWidth) + "  " +
		pad(author, colAuthorWidth) + "  " +
		pad(isbnText, colISBNWidth) + "  " +
		pad(published, colPublishedWidth)
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func (m Model) renderFooter() string {
	var left string
	if m.query != "" {
		left = fmt.Sprintf("%d match(es) on this page", len(m.visibleBooks()))
	} else {
		left = fmt.Sprintf("Page %d of %d · %d books", m.cursor.Page, m.cursor.MaxPage(), m.cursor.TotalBooks)
	}

	help := "a add · e edit · d delete · / search · r refresh · q quit"
	if m.query != "" {
		help = "esc clear search · " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		styles.AccentStyle.Render(left),
		styles.DimStyle.Render(help),
	)
}
