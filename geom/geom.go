// Package geom holds the small value types shared by the measurement,
// caching and invalidation layers.
package geom

import "strconv"

// Size is a two-dimensional extent in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Position addresses an item inside a sectioned list.
// It is comparable and used directly as a cache key.
type Position struct {
	Section int
	Item    int
}

// At is a shorthand constructor for Position.
func At(section, item int) Position { return Position{Section: section, Item: item} }

// Less orders positions by section, then by item.
func (p Position) Less(o Position) bool {
	if p.Section != o.Section {
		return p.Section < o.Section
	}
	return p.Item < o.Item
}

// String renders the position as "section.item".
func (p Position) String() string {
	return strconv.Itoa(p.Section) + "." + strconv.Itoa(p.Item)
}
