package paging

import "github.com/matst80/product-browser/pkg/types"

// Button is one page control as handed to the renderer.
type Button struct {
	Page    int  `json:"page"`
	Current bool `json:"current"`
	Enabled bool `json:"enabled"`
}

type Controls struct {
	Previous Button   `json:"previous"`
	Pages    []Button `json:"pages"`
	Next     Button   `json:"next"`
}

// Window returns the page numbers within radius of current, clamped to
// [1, totalPages].
func Window(current, totalPages, radius int) []int {
	if totalPages < 1 {
		return []int{}
	}
	if radius < 0 {
		radius = 0
	}
	current = clamp(current, 1, totalPages)
	start := max(1, current-radius)
	end := min(totalPages, current+radius)
	ret := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ret = append(ret, p)
	}
	return ret
}

// ChangePage accepts requested only inside [1, totalPages], otherwise the
// current page is kept.
func ChangePage(current, requested, totalPages int) (int, bool) {
	if requested < 1 || requested > totalPages {
		return current, false
	}
	return requested, requested != current
}

func Buttons(current, totalPages, radius int) Controls {
	window := Window(current, totalPages, radius)
	pages := make([]Button, len(window))
	for i, p := range window {
		pages[i] = Button{Page: p, Current: p == current, Enabled: true}
	}
	return Controls{
		Previous: Button{Page: current - 1, Enabled: current > 1},
		Pages:    pages,
		Next:     Button{Page: current + 1, Enabled: current < totalPages},
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Paginator holds the page size and the assumed catalog size.
type Paginator struct {
	ItemsPerPage int
	TotalItems   int
	Radius       int
}

func NewPaginator(itemsPerPage, totalItems, radius int) *Paginator {
	if itemsPerPage <= 0 {
		itemsPerPage = types.DefaultItemsPerPage
	}
	if totalItems <= 0 {
		totalItems = types.DefaultTotalItems
	}
	if radius < 0 {
		radius = types.DefaultPageRadius
	}
	return &Paginator{ItemsPerPage: itemsPerPage, TotalItems: totalItems, Radius: radius}
}

func DefaultPaginator() *Paginator {
	return NewPaginator(types.DefaultItemsPerPage, types.DefaultTotalItems, types.DefaultPageRadius)
}

func (p *Paginator) TotalPages() int {
	return types.PageState{ItemsPerPage: p.ItemsPerPage, TotalItems: p.TotalItems}.TotalPages()
}

// Skip is the catalog offset of the first item on page.
func (p *Paginator) Skip(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * p.ItemsPerPage
}

func (p *Paginator) Window(current int) []int {
	return Window(current, p.TotalPages(), p.Radius)
}

func (p *Paginator) ChangePage(current, requested int) (int, bool) {
	return ChangePage(current, requested, p.TotalPages())
}

func (p *Paginator) Buttons(current int) Controls {
	return Buttons(current, p.TotalPages(), p.Radius)
}
