package browse

import (
	"slices"

	"github.com/desertthunder/explorer/internal/models"
)

// ListState is the listing screen: the current query, the fetched results and how they are sorted.
//
// Each fetch is tagged with a sequence number. A response whose number is not the latest
// issued is dropped, so a slow reply to an old query never replaces newer results.
type ListState struct {
	Variant Variant
	Query   string
	Kind    models.Kind
	Field   Field
	Order   Order
	Loading bool
	Err     error

	fetched []models.Item
	items   []models.Item
	pending uint64
}

// NewListState starts sorted by title or name, ascending.
func NewListState(v Variant) *ListState {
	return &ListState{Variant: v, Kind: v.DefaultKind(), Field: v.DefaultField(), Order: Asc}
}

// Begin marks a fetch for seq as in flight.
func (s *ListState) Begin(seq uint64, query string) {
	s.pending = seq
	s.Query = query
	s.Loading = true
}

// Apply stores the response to fetch seq. It reports false, leaving state untouched,
// when seq is stale.
func (s *ListState) Apply(seq uint64, items []models.Item, err error) bool {
	if seq != s.pending {
		return false
	}
	s.Loading = false
	s.Err = err
	if err != nil {
		return true
	}
	s.fetched = items
	s.items = Sort(items, s.Field, s.Order)
	return true
}

// Pending returns the sequence number of the latest fetch.
func (s *ListState) Pending() uint64 { return s.pending }

// Items returns the results in display order.
func (s *ListState) Items() []models.Item { return s.items }

// SetSort re-sorts the fetched results without fetching.
func (s *ListState) SetSort(field Field, order Order) {
	s.Field = field
	s.Order = order
	s.items = Sort(s.fetched, field, order)
}

// CycleField moves to the next sort field of the variant. Fetched order follows the last field.
func (s *ListState) CycleField() {
	fields := append(slices.Clone(s.Variant.Fields()), FieldNone)
	next := 0
	for i, f := range fields {
		if f == s.Field {
			next = (i + 1) % len(fields)
			break
		}
	}
	s.SetSort(fields[next], s.Order)
}

// ToggleOrder flips the sort direction.
func (s *ListState) ToggleOrder() {
	s.SetSort(s.Field, s.Order.Reverse())
}

// CycleKind moves to the next search type and reports whether it changed.
func (s *ListState) CycleKind() bool {
	kinds := s.Variant.Kinds()
	if len(kinds) < 2 {
		return false
	}
	for i, k := range kinds {
		if k == s.Kind {
			s.Kind = kinds[(i+1)%len(kinds)]
			return true
		}
	}
	s.Kind = kinds[0]
	return true
}

// Select hands off the i-th displayed item with the displayed items as siblings.
func (s *ListState) Select(i int) (Handoff, bool) {
	if i < 0 || i >= len(s.items) {
		return Handoff{}, false
	}
	return NewHandoff(s.items, i), true
}
