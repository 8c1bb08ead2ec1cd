package tui

import (
	"fmt"
	"time"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/isbn"
)

// publishedLayout is the date format accepted in the edit form.
const publishedLayout = "2006-01-02"

// Field identifies an editable book field.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldISBN
	FieldPublished
)

// EditSession captures an in-progress edit of one book. At most one exists
// at a time; it is created on begin-edit and destroyed on save success or
// cancel. A failed save leaves it intact for retry.
type EditSession struct {
	BookID int64

	Title     string
	Author    string
	ISBN      string
	Published string

	original     domain.Book
	originalISBN string
	isbnTouched  bool
}

// NewEditSession seeds a session from the book being edited.
func NewEditSession(b domain.Book) *EditSession {
	return &EditSession{
		BookID:       b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Published:    b.Published.Format(publishedLayout),
		original:     b,
		originalISBN: b.ISBN,
	}
}

// SetField updates one draft field. Setting the ISBN marks it touched only
// when the normalized digits actually differ from the original, so
// re-typing the same number (or re-hyphenating it) stays a no-op.
func (s *EditSession) SetField(f Field, value string) {
	switch f {
	case FieldTitle:
		s.Title = value
	case FieldAuthor:
		s.Author = value
	case FieldISBN:
		s.ISBN = value
		s.isbnTouched = isbn.Normalize(value) != isbn.Normalize(s.originalISBN)
	case FieldPublished:
		s.Published = value
	}
}

// ISBNTouched reports whether the draft ISBN differs from the original.
func (s *EditSession) ISBNTouched() bool {
	return s.isbnTouched
}

// Patch builds the partial update: only fields that changed are included,
// and the ISBN only when touched. An unparseable published date is a
// validation error surfaced inline before anything is transmitted.
func (s *EditSession) Patch() (domain.Patch, error) {
	var p domain.Patch

	if s.Title != s.original.Title {
		title := s.Title
		p.Title = &title
	}
	if s.Author != s.original.Author {
		author := s.Author
		p.Author = &author
	}
	if s.isbnTouched {
		rawISBN := s.ISBN
		p.ISBN = &rawISBN
	}
	if s.Published != s.original.Published.Format(publishedLayout) {
		published, err := time.Parse(publishedLayout, s.Published)
		if err != nil {
			return domain.Patch{}, fmt.Errorf("%w: published date must be YYYY-MM-DD", domain.ErrValidation)
		}
		p.Published = &published
	}

	return p, nil
}
