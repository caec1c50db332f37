package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	assert.Equal(t, 3, p.Pages())
	assert.False(t, p.Up())
	assert.True(t, p.Down())
	assert.Equal(t, 1, p.Cursor())

	assert.True(t, p.NextPage())
	assert.Equal(t, 3, p.Cursor())
	assert.Equal(t, "page 2/3", p.Indicator())

	start, end := p.Visible()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	assert.True(t, p.NextPage())
	start, end = p.Visible()
	assert.Equal(t, 6, start)
	assert.Equal(t, 7, end)
	assert.False(t, p.NextPage())
	assert.False(t, p.Down())

	assert.True(t, p.PrevPage())
	assert.Equal(t, 3, p.Cursor())
}

func TestPaginator_ClampsOnShrink(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		total  int
		want   int
	}{
		{"cursor past new end", 8, 4, 3},
		{"cursor kept", 2, 4, 2},
		{"empty list", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginator(5)
			p.SetTotal(10)
			p.SetCursor(tt.cursor)
			p.SetTotal(tt.total)
			assert.Equal(t, tt.want, p.Cursor())
		})
	}
}

func TestPaginator_PageSize(t *testing.T) {
	p := NewPaginator(0)
	assert.Equal(t, 10, p.PageSize())

	p.SetTotal(5)
	assert.Equal(t, "", p.Indicator())

	p.SetPageSize(2)
	p.SetCursor(4)
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, "page 3/3", p.Indicator())
}
