package domain

import (
	"sort"
	"strings"
	"time"
)

// GenreAll disables the genre filter in Latest.
const GenreAll Genre = "All"

// RelatedLimit is how many related titles a detail page shows.
const RelatedLimit = 6

// Trending returns the admin-flagged movies in stored order.
func Trending(movies []Movie) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.IsTrending {
			out = append(out, m)
		}
	}
	return out
}

// Latest returns movies newest first by CreatedAt, optionally limited to a genre.
// An empty genre or GenreAll matches everything.
func Latest(movies []Movie, genre Genre) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if genre == "" || genre == GenreAll || m.HasGenre(genre) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ByLanguage returns the movies tagged with lang, in stored order.
func ByLanguage(movies []Movie, lang Language) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.HasLanguage(lang) {
			out = append(out, m)
		}
	}
	return out
}

// Search matches q case-insensitively against titles, genres and languages.
// An empty query matches nothing.
func Search(movies []Movie, q string) []Movie {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]Movie, 0)
	if q == "" {
		return out
	}
	for _, m := range movies {
		if containsFold(m.Title, q) || anyGenreContains(m.Genres, q) || anyLanguageContains(m.Languages, q) {
			out = append(out, m)
		}
	}
	return out
}

// AdminFilter is the admin table filter: title or language substring.
// An empty query keeps everything.
func AdminFilter(movies []Movie, q string) []Movie {
	q = strings.ToLower(q)
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if containsFold(m.Title, q) || anyLanguageContains(m.Languages, q) {
			out = append(out, m)
		}
	}
	return out
}

// Related returns up to limit other movies sharing a genre or a language with
// target, most popular first.
func Related(movies []Movie, target *Movie, limit int, now time.Time) []Movie {
	out := make([]Movie, 0, limit)
	for _, m := range movies {
		if m.ID == target.ID {
			continue
		}
		if sharesGenre(&m, target) || sharesLanguage(&m, target) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return PopularityScore(&out[i], now) > PopularityScore(&out[j], now)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func containsFold(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}

func anyGenreContains(genres []Genre, lowerQ string) bool {
	for _, g := range genres {
		if containsFold(string(g), lowerQ) {
			return true
		}
	}
	return false
}

func anyLanguageContains(langs []Language, lowerQ string) bool {
	for _, l := range langs {
		if containsFold(string(l), lowerQ) {
			return true
		}
	}
	return false
}

func sharesGenre(a, b *Movie) bool {
	for _, g := range a.Genres {
		if b.HasGenre(g) {
			return true
		}
	}
	return false
}

func sharesLanguage(a, b *Movie) bool {
	for _, l := range a.Languages {
		if b.HasLanguage(l) {
			return true
		}
	}
	return false
}
