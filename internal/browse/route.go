package browse

import (
	"strings"

	"github.com/desertthunder/explorer/internal/models"
)

// Screen identifies a routed view.
type Screen int

const (
	ScreenNotFound Screen = iota
	ScreenHome
	ScreenCallback
	ScreenList
	ScreenGallery
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenCallback:
		return "callback"
	case ScreenList:
		return "list"
	case ScreenGallery:
		return "gallery"
	case ScreenDetail:
		return "detail"
	}
	return "not found"
}

// Route is a parsed navigation path.
type Route struct {
	Screen Screen
	Kind   models.Kind
	ID     string
	Path   string
}

// ParseRoute maps a path onto a screen:
//
//	/                      home
//	/callback              token capture
//	/search, /list         listing
//	/gallery               gallery
//	/detail/:type/:id      detail
//	/movie/:id             movie detail
//
// Anything else is [ScreenNotFound].
func ParseRoute(path string) Route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	clean := "/" + strings.Trim(path, "/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	r := Route{Path: clean}

	switch {
	case clean == "/":
		r.Screen = ScreenHome
	case clean == "/callback":
		r.Screen = ScreenCallback
	case clean == "/search", clean == "/list":
		r.Screen = ScreenList
	case clean == "/gallery":
		r.Screen = ScreenGallery
	case len(parts) == 3 && parts[0] == "detail" && parts[2] != "":
		kind, err := models.ParseKind(parts[1])
		if err != nil {
			return Route{Path: clean}
		}
		r.Screen, r.Kind, r.ID = ScreenDetail, kind, parts[2]
	case len(parts) == 2 && parts[0] == "movie" && parts[1] != "":
		r.Screen, r.Kind, r.ID = ScreenDetail, models.KindMovie, parts[1]
	}
	return r
}

// DetailPath builds the detail route for an item.
func DetailPath(item models.Item) string {
	return "/detail/" + item.Kind.String() + "/" + item.ID()
}

// RequiresAuth reports whether the screen needs a signed-in session for variant v.
func (r Route) RequiresAuth(v Variant) bool {
	if v != Music {
		return false
	}
	switch r.Screen {
	case ScreenList, ScreenGallery, ScreenDetail:
		return true
	}
	return false
}
