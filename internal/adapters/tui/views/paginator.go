package views

import "fmt"

// Paginator tracks a cursor over a list and the page it falls on.
type Paginator struct {
	pageSize int
	cursor   int
	total    int
}

// NewPaginator creates a paginator showing pageSize rows per page
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the rows per page, e.g. after a resize.
func (p *Paginator) SetPageSize(n int) {
	if n <= 0 {
		n = 10
	}
	p.pageSize = n
}

// PageSize returns the rows per page
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// SetTotal sets the list length and keeps the cursor inside it
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.SetCursor(p.cursor)
}

// Total returns the list length
func (p *Paginator) Total() int {
	return p.total
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.total-1))
}

// Up moves the cursor up one row
func (p *Paginator) Up() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// Down moves the cursor down one row
func (p *Paginator) Down() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	next := (p.Page() + 1) * p.pageSize
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	page := p.Page()
	if page == 0 {
		return false
	}
	p.cursor = (page - 1) * p.pageSize
	return true
}

// Page returns the zero-based page of the cursor
func (p *Paginator) Page() int {
	return p.cursor / p.pageSize
}

// Pages returns the page count, at least 1
func (p *Paginator) Pages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Visible returns the half-open index range of the cursor's page
func (p *Paginator) Visible() (start, end int) {
	start = p.Page() * p.pageSize
	end = min(start+p.pageSize, p.total)
	return start, end
}

// Indicator renders "page 2/5", or "" when everything fits on one page.
func (p *Paginator) Indicator() string {
	if p.Pages() <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d/%d", p.Page()+1, p.Pages())
}
