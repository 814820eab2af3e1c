package browse

import (
	"fmt"
	"slices"

	"github.com/desertthunder/explorer/internal/models"
)

// Handoff carries a selection from a listing into the detail screen.
type Handoff struct {
	Kind     models.Kind
	Item     models.Item
	Siblings []models.Item
	Index    int
}

// NewHandoff selects items[index]; the siblings are copied so later sorting cannot move them.
func NewHandoff(items []models.Item, index int) Handoff {
	return Handoff{
		Kind:     items[index].Kind,
		Item:     items[index],
		Siblings: slices.Clone(items),
		Index:    index,
	}
}

// Valid reports whether the hand-off points at an item inside its siblings.
func (h Handoff) Valid() bool {
	return h.Index >= 0 && h.Index < len(h.Siblings)
}

// Matches reports whether the hand-off was made for the item identified by kind and id.
func (h Handoff) Matches(kind models.Kind, id string) bool {
	return h.Valid() && h.Kind == kind && h.Item.ID() == id
}

// Locate builds a hand-off positioned on the item with the given kind and id.
func Locate(items []models.Item, kind models.Kind, id string) (Handoff, bool) {
	i := slices.IndexFunc(items, func(it models.Item) bool { return it.Kind == kind && it.ID() == id })
	if i < 0 {
		return Handoff{}, false
	}
	return NewHandoff(items, i), true
}

// Navigator steps through the siblings of a hand-off.
//
// With wrap set the ends connect; without it, stepping past an end is refused.
// The index always stays within the siblings.
type Navigator struct {
	items []models.Item
	index int
	wrap  bool
}

// NewNavigator returns a navigator for h. Movie detail wraps at the ends; music detail stops.
func NewNavigator(h Handoff, v Variant) *Navigator {
	index := h.Index
	if !h.Valid() {
		index = 0
	}
	return &Navigator{items: h.Siblings, index: index, wrap: v == Movies}
}

// Current returns the item under the cursor.
func (n *Navigator) Current() models.Item {
	return n.items[n.index]
}

func (n *Navigator) Index() int { return n.index }
func (n *Navigator) Len() int   { return len(n.items) }

func (n *Navigator) HasPrev() bool {
	if n.wrap {
		return len(n.items) > 1
	}
	return n.index > 0
}

func (n *Navigator) HasNext() bool {
	if n.wrap {
		return len(n.items) > 1
	}
	return n.index < len(n.items)-1
}

// Prev moves back one item and reports whether the cursor moved.
func (n *Navigator) Prev() (models.Item, bool) {
	if !n.HasPrev() {
		return n.Current(), false
	}
	n.index = (n.index - 1 + len(n.items)) % len(n.items)
	return n.Current(), true
}

// Next moves forward one item and reports whether the cursor moved.
func (n *Navigator) Next() (models.Item, bool) {
	if !n.HasNext() {
		return n.Current(), false
	}
	n.index = (n.index + 1) % len(n.items)
	return n.Current(), true
}

// Position renders the cursor as "3 of 20".
func (n *Navigator) Position() string {
	return fmt.Sprintf("%d of %d", n.index+1, len(n.items))
}

// Handoff returns a hand-off for the current position.
func (n *Navigator) Handoff() Handoff {
	return NewHandoff(n.items, n.index)
}
