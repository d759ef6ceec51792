package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		current, total, radius int
		expected               []int
	}{
		{1, 9, 2, []int{1, 2, 3}},
		{5, 9, 2, []int{3, 4, 5, 6, 7}},
		{9, 9, 2, []int{7, 8, 9}},
		{2, 9, 2, []int{1, 2, 3, 4}},
		{1, 1, 2, []int{1}},
		{3, 5, 0, []int{3}},
		{1, 0, 2, []int{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, Window(c.current, c.total, c.radius), "window(%d,%d,%d)", c.current, c.total, c.radius)
	}
}

func TestWindowAlwaysContainsCurrent(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for current := 1; current <= total; current++ {
			w := Window(current, total, 2)
			assert.Contains(t, w, current)
			assert.GreaterOrEqual(t, w[0], 1)
			assert.LessOrEqual(t, w[len(w)-1], total)
		}
	}
}

func TestChangePage(t *testing.T) {
	page, changed := ChangePage(3, 0, 9)
	assert.Equal(t, 3, page)
	assert.False(t, changed)

	page, changed = ChangePage(3, 10, 9)
	assert.Equal(t, 3, page)
	assert.False(t, changed)

	page, changed = ChangePage(3, 5, 9)
	assert.Equal(t, 5, page)
	assert.True(t, changed)

	page, changed = ChangePage(5, 5, 9)
	assert.Equal(t, 5, page)
	assert.False(t, changed)
}

func TestButtons(t *testing.T) {
	c := Buttons(1, 9, 2)
	assert.False(t, c.Previous.Enabled)
	assert.True(t, c.Next.Enabled)
	assert.Equal(t, 2, c.Next.Page)
	require.Len(t, c.Pages, 3)
	assert.True(t, c.Pages[0].Current)
	assert.False(t, c.Pages[1].Current)

	c = Buttons(9, 9, 2)
	assert.True(t, c.Previous.Enabled)
	assert.Equal(t, 8, c.Previous.Page)
	assert.False(t, c.Next.Enabled)
}

func TestDefaultPaginator(t *testing.T) {
	p := DefaultPaginator()
	assert.Equal(t, 9, p.TotalPages())
	assert.Equal(t, 0, p.Skip(1))
	assert.Equal(t, 24, p.Skip(3))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, p.Window(5))
}

func TestPaginatorUsesExplicitTotal(t *testing.T) {
	p := NewPaginator(10, 194, 2)
	assert.Equal(t, 20, p.TotalPages())
	page, ok := p.ChangePage(1, 20)
	assert.True(t, ok)
	assert.Equal(t, 20, page)
}
