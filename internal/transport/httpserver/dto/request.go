// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"
	"time"

	"movie-catalog-service/internal/domain"
)

// DefaultDuration is used when the admin leaves the duration empty.
const DefaultDuration = "2h 30m"

// MovieListRequest represents the query parameters of the public movie listing.
// Filters compose: results are newest first, narrowed by each filter given.
type MovieListRequest struct {
	Genre    string `query:"genre" validate:"omitempty,oneof=All Action Romance Comedy Thriller Horror Drama Sci-Fi Family"`
	Language string `query:"language" validate:"omitempty,oneof=Tamil Telugu Malayalam Hindi English Dubbed"`
	Query    string `query:"q" validate:"max=200"`
	Trending bool   `query:"trending"`
}

// AdminMovieListRequest represents the admin table filter.
type AdminMovieListRequest struct {
	Query string `query:"q" validate:"max=200"`
}

// MovieRequest is the add/edit form body. Its tags are the publish gate:
// a title, a poster, a description longer than five characters, at least one
// language and genre, and at least one download link with a real URL.
type MovieRequest struct {
	Title         string               `json:"title" validate:"notblank,max=200"`
	Poster        string               `json:"poster" validate:"notblank"`
	InlinePoster  bool                 `json:"inlinePoster"`
	ReleaseYear   int                  `json:"releaseYear" validate:"omitempty,gte=1900,lte=2100"`
	Languages     []domain.Language    `json:"languages" validate:"required,min=1,dive,oneof=Tamil Telugu Malayalam Hindi English Dubbed"`
	Genres        []domain.Genre       `json:"genres" validate:"required,min=1,dive,oneof=Action Romance Comedy Thriller Horror Drama Sci-Fi Family"`
	Duration      string               `json:"duration" validate:"max=20"`
	Description   string               `json:"description" validate:"trimmin=6,max=5000"`
	DownloadLinks []domain.QualityLink `json:"downloadLinks" validate:"required,min=1,anyreal,dive"`
	IsTrending    bool                 `json:"isTrending"`
	TrailerURL    string               `json:"trailerUrl" validate:"omitempty,url"`
}

// ToMovie builds a new catalog entry. ID, slug and createdAt are left for the
// catalog to assign.
func (r *MovieRequest) ToMovie(now time.Time) domain.Movie {
	m := domain.Movie{}
	r.applyEditable(&m, now)
	return m
}

// ApplyTo composes an update: editable fields come from the form, while id,
// slug, createdAt and the counters are carried over from stored.
func (r *MovieRequest) ApplyTo(stored *domain.Movie, now time.Time) domain.Movie {
	m := domain.Movie{
		ID:        stored.ID,
		Slug:      stored.Slug,
		CreatedAt: stored.CreatedAt,
		Views:     stored.Views,
		Downloads: stored.Downloads,
	}
	r.applyEditable(&m, now)
	return m
}

func (r *MovieRequest) applyEditable(m *domain.Movie, now time.Time) {
	m.Title = strings.TrimSpace(r.Title)
	m.Poster = strings.TrimSpace(r.Poster)
	m.ReleaseYear = r.ReleaseYear
	if m.ReleaseYear == 0 {
		m.ReleaseYear = now.Year()
	}
	m.Languages = append([]domain.Language(nil), r.Languages...)
	m.Genres = append([]domain.Genre(nil), r.Genres...)
	m.Duration = strings.TrimSpace(r.Duration)
	if m.Duration == "" {
		m.Duration = DefaultDuration
	}
	m.Description = strings.TrimSpace(r.Description)
	m.DownloadLinks = append([]domain.QualityLink(nil), r.DownloadLinks...)
	m.IsTrending = r.IsTrending
	m.TrailerURL = strings.TrimSpace(r.TrailerURL)
}

// AdCodeRequest replaces the embed code of an ad slot.
type AdCodeRequest struct {
	Code string `json:"code" validate:"max=20000"`
}
