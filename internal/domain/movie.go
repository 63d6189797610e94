// Package domain contains the catalog entities, their invariants and the ports
// the services depend on. Apart from the validate struct tags used by the store's
// decode check, this package only needs the standard library.
package domain

import (
	"strings"
	"time"
)

// Language is a spoken-language tag on a movie.
type Language string

const (
	LanguageTamil     Language = "Tamil"
	LanguageTelugu    Language = "Telugu"
	LanguageMalayalam Language = "Malayalam"
	LanguageHindi     Language = "Hindi"
	LanguageEnglish   Language = "English"
	LanguageDubbed    Language = "Dubbed"
)

// Languages lists every supported language in display order.
var Languages = []Language{
	LanguageTamil, LanguageTelugu, LanguageMalayalam, LanguageHindi, LanguageEnglish, LanguageDubbed,
}

// Genre is a genre tag on a movie.
type Genre string

const (
	GenreAction   Genre = "Action"
	GenreRomance  Genre = "Romance"
	GenreComedy   Genre = "Comedy"
	GenreThriller Genre = "Thriller"
	GenreHorror   Genre = "Horror"
	GenreDrama    Genre = "Drama"
	GenreSciFi    Genre = "Sci-Fi"
	GenreFamily   Genre = "Family"
)

// Genres lists every supported genre in display order.
var Genres = []Genre{
	GenreAction, GenreRomance, GenreComedy, GenreThriller, GenreHorror, GenreDrama, GenreSciFi, GenreFamily,
}

// Quality is a download quality tier.
type Quality string

const (
	Quality480p  Quality = "480p"
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

// PlaceholderURL marks a download slot that has no real link yet.
const PlaceholderURL = "#"

// QualityLink is one download option for a movie.
type QualityLink struct {
	Quality Quality `json:"quality" validate:"oneof=480p 720p 1080p"`
	URL     string  `json:"url" validate:"max=2048"`
}

// IsReal reports whether the link points somewhere other than the placeholder.
func (l QualityLink) IsReal() bool {
	u := strings.TrimSpace(l.URL)
	return u != "" && u != PlaceholderURL
}

// Movie is a catalog entry as persisted under the movies collection.
//
// ID and Slug are assigned once at creation. Views and Downloads only change
// through the dedicated increment operations.
type Movie struct {
	ID            string        `json:"id" validate:"required"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Poster        string        `json:"poster"`
	ReleaseYear   int           `json:"releaseYear"`
	Languages     []Language    `json:"languages"`
	Genres        []Genre       `json:"genres"`
	Duration      string        `json:"duration"`
	Description   string        `json:"description"`
	DownloadLinks []QualityLink `json:"downloadLinks"`
	Views         int           `json:"views" validate:"gte=0"`
	Downloads     int           `json:"downloads" validate:"gte=0"`
	IsTrending    bool          `json:"isTrending"`
	CreatedAt     int64         `json:"createdAt"` // unix millis
	TrailerURL    string        `json:"trailerUrl,omitempty"`
}

// IsPublishable reports whether at least one download link carries a real URL.
func (m *Movie) IsPublishable() bool {
	for _, l := range m.DownloadLinks {
		if l.IsReal() {
			return true
		}
	}
	return false
}

// HasLanguage reports whether the movie is tagged with lang.
func (m *Movie) HasLanguage(lang Language) bool {
	for _, l := range m.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// HasGenre reports whether the movie is tagged with genre.
func (m *Movie) HasGenre(genre Genre) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// CreatedTime returns CreatedAt as a time.Time.
func (m *Movie) CreatedTime() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// Clone returns a deep copy so callers can't alias stored slices.
func (m *Movie) Clone() *Movie {
	c := *m
	c.Languages = append([]Language(nil), m.Languages...)
	c.Genres = append([]Genre(nil), m.Genres...)
	c.DownloadLinks = append([]QualityLink(nil), m.DownloadLinks...)
	return &c
}

// MovieDraft is the partially filled add form mirrored by the autosave.
// Every field is optional.
type MovieDraft struct {
	Title         string        `json:"title,omitempty"`
	Description   string        `json:"description,omitempty"`
	ReleaseYear   int           `json:"releaseYear,omitempty"`
	Languages     []Language    `json:"languages,omitempty"`
	Genres        []Genre       `json:"genres,omitempty"`
	Duration      string        `json:"duration,omitempty"`
	Poster        string        `json:"poster,omitempty"`
	TrailerURL    string        `json:"trailerUrl,omitempty"`
	DownloadLinks []QualityLink `json:"downloadLinks,omitempty"`
	IsTrending    bool          `json:"isTrending,omitempty"`
}

// HasContent reports whether the draft holds anything worth restoring.
func (d *MovieDraft) HasContent() bool {
	return d.Title != "" || d.Description != "" || d.Poster != ""
}
