package dto

import (
	"time"

	"movie-catalog-service/internal/domain"
)

// MovieResponse represents a single catalog entry in the response.
type MovieResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Poster        string               `json:"poster"`
	ReleaseYear   int                  `json:"releaseYear"`
	Languages     []domain.Language    `json:"languages"`
	Genres        []domain.Genre       `json:"genres"`
	Duration      string               `json:"duration"`
	Description   string               `json:"description"`
	DownloadLinks []domain.QualityLink `json:"downloadLinks"`
	IsTrending    bool                 `json:"isTrending"`
	TrailerURL    string               `json:"trailerUrl,omitempty"`

	// Counters
	Views     int `json:"views"`
	Downloads int `json:"downloads"`

	// Score
	Popularity float64 `json:"popularity"`

	// Timestamps
	CreatedAt string `json:"createdAt"`
}

// FromDomainMovie converts domain.Movie to MovieResponse.
func FromDomainMovie(m *domain.Movie, now time.Time) MovieResponse {
	return MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          m.Slug,
		Poster:        m.Poster,
		ReleaseYear:   m.ReleaseYear,
		Languages:     nonNil(m.Languages),
		Genres:        nonNil(m.Genres),
		Duration:      m.Duration,
		Description:   m.Description,
		DownloadLinks: nonNil(m.DownloadLinks),
		IsTrending:    m.IsTrending,
		TrailerURL:    m.TrailerURL,
		Views:         m.Views,
		Downloads:     m.Downloads,
		Popularity:    domain.PopularityScore(m, now),
		CreatedAt:     m.CreatedTime().UTC().Format(time.RFC3339),
	}
}

// MovieListResponse represents a list of movies.
type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
	Total  int             `json:"total"`
}

// FromMovies converts a movie slice to MovieListResponse.
func FromMovies(movies []domain.Movie, now time.Time) MovieListResponse {
	out := make([]MovieResponse, len(movies))
	for i := range movies {
		out[i] = FromDomainMovie(&movies[i], now)
	}
	return MovieListResponse{Movies: out, Total: len(out)}
}

// MovieDetailResponse is the detail page payload: the movie plus its related strip.
type MovieDetailResponse struct {
	Movie   MovieResponse   `json:"movie"`
	Related []MovieResponse `json:"related"`
}

// FromMovieDetail builds the detail payload.
func FromMovieDetail(m *domain.Movie, related []domain.Movie, now time.Time) MovieDetailResponse {
	return MovieDetailResponse{
		Movie:   FromDomainMovie(m, now),
		Related: FromMovies(related, now).Movies,
	}
}

// AdListResponse represents the ad slot configuration.
type AdListResponse struct {
	Ads []domain.AdConfig `json:"ads"`
}

// AnalyticsResponse represents the running totals.
type AnalyticsResponse struct {
	TotalMovies    int `json:"totalMovies"`
	TotalDownloads int `json:"totalDownloads"`
	DailyViews     int `json:"dailyViews"`
}

// FromAnalytics converts domain.Analytics to AnalyticsResponse.
func FromAnalytics(a domain.Analytics) AnalyticsResponse {
	return AnalyticsResponse{
		TotalMovies:    a.TotalMovies,
		TotalDownloads: a.TotalDownloads,
		DailyViews:     a.DailyViews,
	}
}

// LogEntryResponse represents one activity log entry.
type LogEntryResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Time      string `json:"time"`
}

// LogListResponse represents the activity log, newest first.
type LogListResponse struct {
	Logs []LogEntryResponse `json:"logs"`
}

// FromLogEntries converts log entries to LogListResponse.
func FromLogEntries(entries []domain.ActivityLogEntry) LogListResponse {
	out := make([]LogEntryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		out[i] = LogEntryResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Details:   e.Details,
			Type:      string(e.Type),
			Timestamp: e.Timestamp,
			Time:      e.Time().UTC().Format(time.RFC3339),
		}
	}
	return LogListResponse{Logs: out}
}

// DraftResponse represents the autosaved add form.
type DraftResponse struct {
	Exists bool              `json:"exists"`
	Draft  domain.MovieDraft `json:"draft"`
}

// ReconcileResponse reports whether analytics drift was corrected.
type ReconcileResponse struct {
	Corrected bool              `json:"corrected"`
	Analytics AnalyticsResponse `json:"analytics"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
