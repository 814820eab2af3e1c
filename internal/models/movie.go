package models

import "strconv"

// Movie is a TMDB listing entry.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
}

// Key returns the movie id as the string identity used by navigation.
func (m Movie) Key() string { return strconv.Itoa(m.ID) }

// HasGenre reports whether the movie is tagged with genreID.
func (m Movie) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// Genre is an entry of the TMDB genre vocabulary.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// MovieDetails is the single-movie detail record.
//
// The detail endpoint returns genres as objects, so GenreIDs is usually empty here.
type MovieDetails struct {
	Movie
	Genres              []Genre             `json:"genres"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
}

// GenreNames returns the names of the detail's genres in order.
func (d MovieDetails) GenreNames() []string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return names
}

// TMDBResponse is a paginated movie listing.
type TMDBResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// GenreResponse wraps the genre vocabulary endpoint.
type GenreResponse struct {
	Genres []Genre `json:"genres"`
}
