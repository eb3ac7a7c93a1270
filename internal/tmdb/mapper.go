package tmdb

import (
	"github.com/mmcdole/reel/internal/domain"
)

// maxPages is the deepest page TMDB will serve for any list endpoint
const maxPages = 500

// MapMovie converts a list-endpoint movie into a domain summary
func MapMovie(r movieResult) domain.Movie {
	return domain.Movie{
		ID:            r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Overview:      r.Overview,
		ReleaseDate:   r.ReleaseDate,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		VoteAverage:   r.VoteAverage,
		VoteCount:     r.VoteCount,
		Popularity:    r.Popularity,
		GenreIDs:      r.GenreIDs,
	}
}

// MapPerson converts a person search result into a domain summary
func MapPerson(r personResult) domain.Person {
	p := domain.Person{
		ID:                 r.ID,
		Name:               r.Name,
		KnownForDepartment: r.KnownForDepartment,
		ProfilePath:        r.ProfilePath,
		Popularity:         r.Popularity,
	}
	for _, k := range r.KnownFor {
		title := k.Title
		if title == "" {
			title = k.Name
		}
		if title != "" {
			p.KnownFor = append(p.KnownFor, title)
		}
	}
	return p
}

// MapMoviePage converts a movie list response into a ResultPage
func MapMoviePage(resp pagedResponse[movieResult]) domain.ResultPage {
	items := make([]domain.ListItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		m := MapMovie(r)
		items = append(items, &m)
	}
	return newPage(items, resp.Page, resp.TotalPages, resp.TotalResults)
}

// MapPersonPage converts a person list response into a ResultPage
func MapPersonPage(resp pagedResponse[personResult]) domain.ResultPage {
	items := make([]domain.ListItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		p := MapPerson(r)
		items = append(items, &p)
	}
	return newPage(items, resp.Page, resp.TotalPages, resp.TotalResults)
}

// newPage normalises pagination: page and total are at least 1 and the
// total never exceeds what TMDB will actually serve.
func newPage(items []domain.ListItem, page, totalPages, totalResults int) domain.ResultPage {
	if page < 1 {
		page = 1
	}
	if totalPages > maxPages {
		totalPages = maxPages
	}
	if totalPages < page {
		totalPages = page
	}
	return domain.ResultPage{
		Items:        items,
		Page:         page,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
}

// MapMovieDetail converts /movie/{id} into a domain detail record
func MapMovieDetail(d movieDetails) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		Movie:    MapMovie(d.movieResult),
		Runtime:  d.Runtime,
		Tagline:  d.Tagline,
		Status:   d.Status,
		Homepage: d.Homepage,
		IMDBID:   d.IMDBID,
	}
	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
		detail.GenreIDs = append(detail.GenreIDs, g.ID)
	}
	for _, v := range d.Videos.Results {
		detail.Videos = append(detail.Videos, domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	return detail
}

// MapPersonDetail converts /person/{id} into a domain detail record
func MapPersonDetail(d personDetails) *domain.PersonDetail {
	detail := &domain.PersonDetail{
		Person: domain.Person{
			ID:                 d.ID,
			Name:               d.Name,
			KnownForDepartment: d.KnownForDepartment,
			ProfilePath:        d.ProfilePath,
			Popularity:         d.Popularity,
		},
		Biography:    d.Biography,
		Birthday:     d.Birthday,
		Deathday:     d.Deathday,
		PlaceOfBirth: d.PlaceOfBirth,
	}
	for _, c := range d.MovieCredits.Cast {
		detail.Cast = append(detail.Cast, domain.CastCredit{Movie: MapMovie(c.movieResult), Character: c.Character})
	}
	for _, c := range d.MovieCredits.Crew {
		detail.Crew = append(detail.Crew, domain.CrewCredit{Movie: MapMovie(c.movieResult), Job: c.Job})
	}
	return detail
}
