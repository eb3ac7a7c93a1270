package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaType distinguishes the kinds of items the metadata source returns
type MediaType int

const (
	MediaTypeMovie MediaType = iota
	MediaTypePerson
)

// String returns the lowercase type name used in item keys and logs
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "movie"
	case MediaTypePerson:
		return "person"
	default:
		return "unknown"
	}
}

// Movie is a movie summary as returned by list endpoints.
// Watchlist entries persist this record verbatim.
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"` // "2006-01-02", may be empty
	PosterPath    string  `json:"poster_path,omitempty"`
	BackdropPath  string  `json:"backdrop_path,omitempty"`
	VoteAverage   float64 `json:"vote_average,omitempty"`
	VoteCount     int     `json:"vote_count,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
}

// Year returns the release year, or 0 when the release date is unknown
func (m Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// FormattedRating returns the vote average as "7.4", or "" when unrated
func (m Movie) FormattedRating() string {
	if m.VoteCount == 0 && m.VoteAverage == 0 {
		return ""
	}
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

// ListItem interface implementation for Movie

func (m *Movie) GetID() int              { return m.ID }
func (m *Movie) GetTitle() string        { return m.Title }
func (m *Movie) GetYear() int            { return m.Year() }
func (m *Movie) GetMediaType() MediaType { return MediaTypeMovie }
func (m *Movie) GetItemType() string     { return MediaTypeMovie.String() }
func (m *Movie) GetDescription() string {
	year := m.Year()
	rating := m.FormattedRating()
	switch {
	case year > 0 && rating != "":
		return fmt.Sprintf("%d  ★ %s", year, rating)
	case year > 0:
		return strconv.Itoa(year)
	case rating != "":
		return "★ " + rating
	default:
		return ""
	}
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a clip attached to a movie (trailer, teaser, featurette)
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"` // "YouTube", "Vimeo"
	Type     string `json:"type"` // "Trailer", "Teaser", ...
	Official bool   `json:"official"`
}

// URL returns a browser/player URL for the clip, or "" for unknown sites
func (v Video) URL() string {
	switch strings.ToLower(v.Site) {
	case "youtube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "vimeo":
		return "https://vimeo.com/" + v.Key
	default:
		return ""
	}
}

// MovieDetail is the full record for a single movie
type MovieDetail struct {
	Movie
	Runtime  int     `json:"runtime,omitempty"` // minutes
	Tagline  string  `json:"tagline,omitempty"`
	Status   string  `json:"status,omitempty"`
	Homepage string  `json:"homepage,omitempty"`
	IMDBID   string  `json:"imdb_id,omitempty"`
	Genres   []Genre `json:"genres,omitempty"`
	Videos   []Video `json:"videos,omitempty"`
}

// FormattedRuntime returns the runtime as "2h 5m", or "" when unknown
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", d.Runtime/60, d.Runtime%60)
}

// GenreNames returns the genre names in API order
func (d MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Trailer picks the clip to open for "play trailer": an official YouTube
// trailer if there is one, then any YouTube trailer, then any YouTube teaser.
func (d MovieDetail) Trailer() (Video, bool) {
	pick := func(match func(Video) bool) (Video, bool) {
		for _, v := range d.Videos {
			if strings.EqualFold(v.Site, "YouTube") && match(v) {
				return v, true
			}
		}
		return Video{}, false
	}
	if v, ok := pick(func(v Video) bool { return v.Type == "Trailer" && v.Official }); ok {
		return v, true
	}
	if v, ok := pick(func(v Video) bool { return v.Type == "Trailer" }); ok {
		return v, true
	}
	return pick(func(v Video) bool { return v.Type == "Teaser" })
}

// Person is a person summary as returned by person search
type Person struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	KnownForDepartment string   `json:"known_for_department,omitempty"`
	ProfilePath        string   `json:"profile_path,omitempty"`
	Popularity         float64  `json:"popularity,omitempty"`
	KnownFor           []string `json:"known_for,omitempty"` // titles
}

// ListItem interface implementation for Person

func (p *Person) GetID() int              { return p.ID }
func (p *Person) GetTitle() string        { return p.Name }
func (p *Person) GetYear() int            { return 0 }
func (p *Person) GetMediaType() MediaType { return MediaTypePerson }
func (p *Person) GetItemType() string     { return MediaTypePerson.String() }

func (p *Person) GetDescription() string {
	if len(p.KnownFor) == 0 {
		return p.KnownForDepartment
	}
	known := strings.Join(p.KnownFor, ", ")
	if p.KnownForDepartment == "" {
		return known
	}
	return p.KnownForDepartment + " · " + known
}

// CastCredit is a movie the person appeared in
type CastCredit struct {
	Movie
	Character string `json:"character,omitempty"`
}

// CrewCredit is a movie the person worked on
type CrewCredit struct {
	Movie
	Job string `json:"job,omitempty"`
}

// PersonDetail is the full record for a single person, including credits
type PersonDetail struct {
	Person
	Biography    string       `json:"biography,omitempty"`
	Birthday     string       `json:"birthday,omitempty"`
	Deathday     string       `json:"deathday,omitempty"`
	PlaceOfBirth string       `json:"place_of_birth,omitempty"`
	Cast         []CastCredit `json:"cast,omitempty"`
	Crew         []CrewCredit `json:"crew,omitempty"`
}

// Lifespan returns "1956–" or "1926–2016", or "" when the birthday is unknown
func (p PersonDetail) Lifespan() string {
	born := yearOf(p.Birthday)
	if born == 0 {
		return ""
	}
	if died := yearOf(p.Deathday); died > 0 {
		return fmt.Sprintf("%d–%d", born, died)
	}
	return fmt.Sprintf("%d–", born)
}

// yearOf extracts the year from a "YYYY-MM-DD" date
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
