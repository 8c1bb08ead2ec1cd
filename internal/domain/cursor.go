package domain

// PageCursor tracks the pagination position over the catalog list.
// Page is always within [1, MaxPage()].
type PageCursor struct {
	Page       int
	PageSize   int
	TotalBooks int
}

// MaxPage returns the highest valid page number for the known total.
// An empty collection still has one (empty) page.
func (c PageCursor) MaxPage() int {
	if c.PageSize <= 0 {
		return 1
	}
	max := (c.TotalBooks + c.PageSize - 1) / c.PageSize
	if max < 1 {
		max = 1
	}
	return max
}

// Clamp returns n forced into the valid page range.
func (c PageCursor) Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if max := c.MaxPage(); n > max {
		return max
	}
	return n
}

// SetTotal updates the total and re-clamps the current page, which can
// move backwards when deletions shrink the collection.
func (c *PageCursor) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	c.TotalBooks = total
	c.Page = c.Clamp(c.Page)
}
