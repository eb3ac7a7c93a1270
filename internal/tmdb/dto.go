package tmdb

// pagedResponse is the envelope shared by every list endpoint
type pagedResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// errorResponse is the body TMDB sends with non-2xx statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// movieResult is a movie as it appears in list endpoints
type movieResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
	Adult         bool    `json:"adult"`
}

// knownFor is an entry in a person's known_for list (movie or tv)
type knownFor struct {
	ID        int    `json:"id"`
	MediaType string `json:"media_type"`
	Title     string `json:"title"` // movies
	Name      string `json:"name"`  // tv
}

// personResult is a person as it appears in /search/person
type personResult struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	KnownForDepartment string     `json:"known_for_department"`
	ProfilePath        string     `json:"profile_path"`
	Popularity         float64    `json:"popularity"`
	KnownFor           []knownFor `json:"known_for"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// movieDetails is /movie/{id}?append_to_response=videos
type movieDetails struct {
	movieResult
	Runtime  int     `json:"runtime"`
	Tagline  string  `json:"tagline"`
	Status   string  `json:"status"`
	Homepage string  `json:"homepage"`
	IMDBID   string  `json:"imdb_id"`
	Genres   []genre `json:"genres"`
	Videos   struct {
		Results []video `json:"results"`
	} `json:"videos"`
}

type castCredit struct {
	movieResult
	Character string `json:"character"`
}

type crewCredit struct {
	movieResult
	Job string `json:"job"`
}

// personDetails is /person/{id}?append_to_response=movie_credits
type personDetails struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	KnownForDepartment string  `json:"known_for_department"`
	ProfilePath        string  `json:"profile_path"`
	Popularity         float64 `json:"popularity"`
	Biography          string  `json:"biography"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	MovieCredits       struct {
		Cast []castCredit `json:"cast"`
		Crew []crewCredit `json:"crew"`
	} `json:"movie_credits"`
}
