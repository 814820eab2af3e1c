package browse

import (
	"fmt"
	"strings"

	"github.com/desertthunder/explorer/internal/models"
)

// Variant selects which catalog the views browse.
type Variant int

const (
	Movies Variant = iota
	Music
)

func (v Variant) String() string {
	if v == Music {
		return "music"
	}
	return "movies"
}

// ParseVariant accepts "movies"/"movie" and "music".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movies", "movie":
		return Movies, nil
	case "music":
		return Music, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Kinds lists the item kinds a listing of this variant can search for.
func (v Variant) Kinds() []models.Kind {
	if v == Music {
		return []models.Kind{models.KindTrack, models.KindAlbum, models.KindArtist}
	}
	return []models.Kind{models.KindMovie}
}

// DefaultKind is the kind a fresh listing searches for.
func (v Variant) DefaultKind() models.Kind {
	return v.Kinds()[0]
}

// Owns reports whether items of kind belong to this variant.
func (v Variant) Owns(kind models.Kind) bool {
	for _, k := range v.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
