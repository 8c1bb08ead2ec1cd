package domain

import "time"

// Book is a catalog entry as served by the remote store. ID and the
// timestamps are server-assigned and never sent on create/update.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Published time.Time `json:"published"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Draft is the payload for creating a new book.
type Draft struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Published time.Time `json:"published"`
}

// Patch is a partial update. Nil fields are omitted from the wire payload,
// so an unchanged ISBN is never re-validated or re-transmitted.
type Patch struct {
	Title     *string    `json:"title,omitempty"`
	Author    *string    `json:"author,omitempty"`
	ISBN      *string    `json:"isbn,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.ISBN == nil && p.Published == nil
}

// Page is one page of list results together with the collection size.
type Page struct {
	Books      []Book `json:"books"`
	TotalBooks int    `json:"total_books"`
	PageSize   int    `json:"page_size"`
}
