package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Item is a single catalog entry (a movie). Identity is ID.
// Items are never mutated after they are fetched; a newer fetch replaces them wholesale.
type Item struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path,omitempty"`  // Relative image path; empty = no poster
	Rating      *float64 `json:"vote_average,omitempty"` // 0-10 scale; nil = unrated
	ReleaseDate string   `json:"release_date,omitempty"` // YYYY-MM-DD
	Overview    string   `json:"overview,omitempty"`

	// Only present on items fetched through the detail endpoint
	Detail *Detail `json:"detail,omitempty"`
}

// Detail carries the extended payload of a detail fetch.
type Detail struct {
	Genres           []Genre      `json:"genres,omitempty"`
	Cast             []CastMember `json:"cast,omitempty"`
	Runtime          int          `json:"runtime,omitempty"` // Minutes
	OriginalLanguage string       `json:"original_language,omitempty"`
	VoteCount        int          `json:"vote_count,omitempty"`
	Videos           []Video      `json:"videos,omitempty"`
}

// Genre is a catalog genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a billed cast entry
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Video is a trailer, teaser or clip hosted on an external site
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Rated reports whether the item carries a rating
func (i Item) Rated() bool {
	return i.Rating != nil
}

// FormattedRating returns "7.3/10" or "unrated"
func (i Item) FormattedRating() string {
	if i.Rating == nil {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/10", *i.Rating)
}

// Year returns the release year, 0 if unknown
func (i Item) Year() int {
	if len(i.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(i.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Description returns secondary info for list display (year and rating)
func (i Item) Description() string {
	if year := i.Year(); year > 0 {
		return fmt.Sprintf("%d · %s", year, i.FormattedRating())
	}
	return i.FormattedRating()
}

// FormattedRuntime returns the runtime as "2h 15m", or "" when unknown
func (d *Detail) FormattedRuntime() string {
	if d == nil || d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// TrailerURL returns a watch link for the first YouTube trailer, falling back
// to the first listed video. Empty when the item has no videos.
func (d *Detail) TrailerURL() string {
	if d == nil || len(d.Videos) == 0 {
		return ""
	}
	pick := d.Videos[0]
	for _, v := range d.Videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			pick = v
			break
		}
	}
	if pick.Site != "YouTube" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + pick.Key
}

// User is the signed-in identity. A nil *User means signed out.
type User struct {
	Username   string    `json:"username"`
	SessionID  string    `json:"session_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// Credentials is a login attempt. The password is checked for presence only
// and is never persisted.
type Credentials struct {
	Username string `validate:"required,notblank"`
	Password string `validate:"required,notblank"`
}

// SearchPage is one page of remote search results
type SearchPage struct {
	Items        []Item
	Page         int // 1-based
	TotalPages   int
	TotalResults int
}
