package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvxness/shelftui/internal/domain"
)

func editableBook() domain.Book {
	return domain.Book{
		ID:        5,
		Title:     "The Hobbit",
		Author:    "J.R.R. Tolkien",
		ISBN:      "978-3-16-148410-0",
		Published: time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewEditSessionSeedsFromBook(t *testing.T) {
	s := NewEditSession(editableBook())
	assert.Equal(t, int64(5), s.BookID)
	assert.Equal(t, "The Hobbit", s.Title)
	assert.Equal(t, "1937-09-21", s.Published)
	assert.False(t, s.ISBNTouched())
}

func TestISBNTouchedTracksNormalizedDigits(t *testing.T) {
	s := NewEditSession(editableBook())

	t.Run("rehyphenating is not a change", func(t *testing.T) {
		s.SetField(FieldISBN, "9783161484100")
		assert.False(t, s.ISBNTouched())
	})

	t.Run("different digits is a change", func(t *testing.T) {
		s.SetField(FieldISBN, "978-0-14-103614-4")
		assert.True(t, s.ISBNTouched())
	})

	t.Run("reverting clears the touch", func(t *testing.T) {
		s.SetField(FieldISBN, "978 3 16 148410 0")
		assert.False(t, s.ISBNTouched())
	})
}

func TestPatchIncludesOnlyChangedFields(t *testing.T) {
	s := NewEditSession(editableBook())

	t.Run("no changes yields empty patch", func(t *testing.T) {
		p, err := s.Patch()
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("title change only", func(t *testing.T) {
		s.SetField(FieldTitle, "The Hobbit, or There and Back Again")
		p, err := s.Patch()
		require.NoError(t, err)
		require.NotNil(t, p.Title)
		assert.Nil(t, p.Author)
		assert.Nil(t, p.ISBN)
		assert.Nil(t, p.Published)
	})

	t.Run("untouched isbn stays out even after retyping", func(t *testing.T) {
		s.SetField(FieldISBN, "978-3-16-148410-0")
		p, err := s.Patch()
		require.NoError(t, err)
		assert.Nil(t, p.ISBN)
	})

	t.Run("touched isbn is included", func(t *testing.T) {
		s.SetField(FieldISBN, "9780141036144")
		p, err := s.Patch()
		require.NoError(t, err)
		require.NotNil(t, p.ISBN)
		assert.Equal(t, "9780141036144", *p.ISBN)
	})
}

func TestPatchRejectsBadPublishedDate(t *testing.T) {
	s := NewEditSession(editableBook())
	s.SetField(FieldPublished, "21/09/1937")
	_, err := s.Patch()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPatchParsesChangedPublishedDate(t *testing.T) {
	s := NewEditSession(editableBook())
	s.SetField(FieldPublished, "1951-10-01")
	p, err := s.Patch()
	require.NoError(t, err)
	require.NotNil(t, p.Published)
	assert.Equal(t, 1951, p.Published.Year())
}
