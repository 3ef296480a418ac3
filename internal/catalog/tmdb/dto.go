package tmdb

// Movie is a movie entry as returned by list endpoints (trending, search)
type Movie struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title,omitempty"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	OriginalLanguage string   `json:"original_language,omitempty"`
	MediaType        string   `json:"media_type,omitempty"` // Set on trending results
	Adult            bool     `json:"adult,omitempty"`
}

// PagedResponse is the envelope for paged list endpoints
type PagedResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// MovieDetail is the /movie/{id} payload with appended videos and credits
type MovieDetail struct {
	Movie
	Runtime int     `json:"runtime"`
	Genres  []Genre `json:"genres"`
	Videos  struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []Cast `json:"cast"`
	} `json:"credits"`
}

// Genre is a genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is an entry of the appended videos list
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// Cast is an entry of the appended credits.cast list
type Cast struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// ErrorResponse is the body TMDB returns with non-success statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
