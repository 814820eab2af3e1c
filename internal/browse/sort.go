package browse

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/explorer/internal/models"
)

// Field names a sortable attribute.
type Field string

const (
	FieldNone        Field = ""
	FieldTitle       Field = "title"
	FieldName        Field = "name"
	FieldReleaseDate Field = "release_date"
	FieldVoteAverage Field = "vote_average"
	FieldPopularity  Field = "popularity"
	FieldDuration    Field = "duration"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder accepts asc/desc; empty means ascending.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(s)) {
	case Asc, "":
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Fields lists the sort fields offered by a variant.
func (v Variant) Fields() []Field {
	if v == Music {
		return []Field{FieldName, FieldPopularity, FieldReleaseDate, FieldDuration}
	}
	return []Field{FieldTitle, FieldReleaseDate, FieldVoteAverage, FieldPopularity}
}

// DefaultField is the field a fresh listing sorts by: the title or name.
func (v Variant) DefaultField() Field {
	return v.Fields()[0]
}

// ParseField validates s against the variant's fields. Empty selects [Variant.DefaultField]
// and "none" keeps the fetched order.
func (v Variant) ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case f == "":
		return v.DefaultField(), nil
	case f == "none":
		return FieldNone, nil
	case slices.Contains(v.Fields(), f):
		return f, nil
	}
	return "", fmt.Errorf("unknown %s sort field %q", v, s)
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// parseDate returns the zero time for missing or malformed dates so they sort first.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sort returns a stably sorted copy of items. FieldNone returns an unsorted copy.
//
// Names compare by their lowercased bytes. Numbers compare numerically, dates chronologically.
func Sort(items []models.Item, field Field, order Order) []models.Item {
	out := slices.Clone(items)
	if field == FieldNone {
		return out
	}

	var compare func(a, b models.Item) int
	switch field {
	case FieldTitle, FieldName:
		compare = func(a, b models.Item) int {
			return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
		}
	case FieldReleaseDate:
		compare = func(a, b models.Item) int { return parseDate(a.ReleaseDate()).Compare(parseDate(b.ReleaseDate())) }
	case FieldVoteAverage:
		compare = func(a, b models.Item) int { return cmp.Compare(a.Rating(), b.Rating()) }
	case FieldPopularity:
		compare = func(a, b models.Item) int { return cmp.Compare(a.Popularity(), b.Popularity()) }
	case FieldDuration:
		compare = func(a, b models.Item) int { return cmp.Compare(a.Duration(), b.Duration()) }
	default:
		return out
	}

	if order == Desc {
		asc := compare
		compare = func(a, b models.Item) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, compare)
	return out
}
