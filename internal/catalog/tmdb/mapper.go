package tmdb

import (
	"sort"

	"github.com/mmcdole/reel/internal/domain"
)

// maxCast is how many billed cast members a detail keeps
const maxCast = 10

// MapMovies converts TMDB list results to domain items.
// Trending can include non-movie entries; only movies are kept.
func MapMovies(movies []Movie) []domain.Item {
	items := make([]domain.Item, 0, len(movies))
	for _, m := range movies {
		if m.MediaType != "" && m.MediaType != "movie" {
			continue
		}
		items = append(items, mapMovie(m))
	}
	return items
}

// mapMovie converts a single movie to a domain item
func mapMovie(m Movie) domain.Item {
	item := domain.Item{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
		Rating:      mapRating(m.VoteAverage, m.VoteCount),
	}
	if item.Title == "" {
		item.Title = m.OriginalTitle
	}
	if m.PosterPath != nil {
		item.PosterPath = *m.PosterPath
	}
	return item
}

// mapRating keeps "no votes yet" distinct from a real zero score
func mapRating(avg *float64, count int) *float64 {
	if avg == nil {
		return nil
	}
	if *avg == 0 && count == 0 {
		return nil
	}
	v := *avg
	return &v
}

// MapDetail converts a detail payload to a domain item with Detail populated
func MapDetail(d MovieDetail) domain.Item {
	item := mapMovie(d.Movie)

	detail := &domain.Detail{
		Runtime:          d.Runtime,
		OriginalLanguage: d.OriginalLanguage,
		VoteCount:        d.VoteCount,
	}

	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	for _, v := range d.Videos.Results {
		detail.Videos = append(detail.Videos, domain.Video{
			Key:  v.Key,
			Site: v.Site,
			Type: v.Type,
			Name: v.Name,
		})
	}

	cast := append([]Cast(nil), d.Credits.Cast...)
	sort.SliceStable(cast, func(i, j int) bool {
		return cast[i].Order < cast[j].Order
	})
	if len(cast) > maxCast {
		cast = cast[:maxCast]
	}
	for _, c := range cast {
		member := domain.CastMember{ID: c.ID, Name: c.Name, Character: c.Character}
		if c.ProfilePath != nil {
			member.ProfilePath = *c.ProfilePath
		}
		detail.Cast = append(detail.Cast, member)
	}

	item.Detail = detail
	return item
}
