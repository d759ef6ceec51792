package types

import "strings"

type SortMode string

const (
	SortAll       SortMode = "all"
	SortCheap     SortMode = "cheap"
	SortExpensive SortMode = "expensive"
	SortPopular   SortMode = "popular"
)

// SortModes lists the selectable orderings in dropdown order.
var SortModes = []SortMode{SortCheap, SortExpensive, SortPopular}

func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortCheap:
		return SortCheap
	case SortExpensive:
		return SortExpensive
	case SortPopular:
		return SortPopular
	default:
		return SortAll
	}
}

// Label is the text of the mode in the sort dropdown menu.
func (s SortMode) Label() string {
	if s == SortAll || s == "" {
		return "Filter"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ButtonLabel is the text on the closed dropdown button, the label with a
// lower case first letter.
func (s SortMode) ButtonLabel() string {
	l := s.Label()
	return strings.ToLower(l[:1]) + l[1:]
}
