package domain

import "time"

func placeholderLinks(qualities ...Quality) []QualityLink {
	links := make([]QualityLink, len(qualities))
	for i, q := range qualities {
		links[i] = QualityLink{Quality: q, URL: PlaceholderURL}
	}
	return links
}

// SeedMovies returns the first-run catalog. CreatedAt values are offsets from now
// so that "latest" ordering is stable: RRR, Vikram Vedha, The Gray Man, Ponniyin Selvan.
func SeedMovies(now time.Time) []Movie {
	ms := now.UnixMilli()
	return []Movie{
		{
			ID:            "1",
			Title:         "Vikram Vedha",
			Slug:          "vikram-vedha-2022",
			Poster:        "https://picsum.photos/seed/vikram/400/600",
			ReleaseYear:   2022,
			Languages:     []Language{LanguageHindi, LanguageTamil},
			Genres:        []Genre{GenreAction, GenreThriller, GenreDrama},
			Duration:      "2h 40m",
			Description:   "A tough police officer sets out to track down and kill an equally tough gangster.",
			DownloadLinks: placeholderLinks(Quality480p, Quality720p, Quality1080p),
			Views:         1250,
			Downloads:     450,
			IsTrending:    true,
			CreatedAt:     ms - 100000000,
		},
		{
			ID:            "2",
			Title:         "The Gray Man",
			Slug:          "the-gray-man-2022",
			Poster:        "https://picsum.photos/seed/grayman/400/600",
			ReleaseYear:   2022,
			Languages:     []Language{LanguageEnglish, LanguageDubbed},
			Genres:        []Genre{GenreAction, GenreSciFi, GenreThriller},
			Duration:      "2h 2m",
			Description:   "When the CIAs most skilled operative accidentally uncovers dark agency secrets, a psychopathic former colleague puts a bounty on his head.",
			DownloadLinks: placeholderLinks(Quality720p, Quality1080p),
			Views:         890,
			Downloads:     320,
			IsTrending:    true,
			CreatedAt:     ms - 200000000,
		},
		{
			ID:            "3",
			Title:         "Ponniyin Selvan: I",
			Slug:          "ponniyin-selvan-1-2022",
			Poster:        "https://picsum.photos/seed/ps1/400/600",
			ReleaseYear:   2022,
			Languages:     []Language{LanguageTamil, LanguageTelugu, LanguageMalayalam},
			Genres:        []Genre{GenreAction, GenreDrama, GenreFamily},
			Duration:      "2h 47m",
			Description:   "Vandiyathevan sets out to cross the Chola land to deliver a message from the Crown Prince Aditha Karikalan.",
			DownloadLinks: placeholderLinks(Quality480p, Quality720p, Quality1080p),
			Views:         2500,
			Downloads:     1200,
			IsTrending:    false,
			CreatedAt:     ms - 300000000,
		},
		{
			ID:            "4",
			Title:         "RRR",
			Slug:          "rrr-2022",
			Poster:        "https://picsum.photos/seed/rrr/400/600",
			ReleaseYear:   2022,
			Languages:     []Language{LanguageTelugu, LanguageHindi, LanguageTamil},
			Genres:        []Genre{GenreAction, GenreDrama, GenreRomance},
			Duration:      "3h 2m",
			Description:   "A fictitious story about two legendary revolutionaries and their journey away from home.",
			DownloadLinks: placeholderLinks(Quality480p, Quality720p, Quality1080p),
			Views:         5600,
			Downloads:     3400,
			IsTrending:    true,
			CreatedAt:     ms - 50000000,
		},
	}
}

// SeedAds returns the fixed set of ad slots.
func SeedAds() []AdConfig {
	return []AdConfig{
		{ID: "ad-top", Name: "Header Banner", Enabled: true, Code: "Banner Ad (728x90)", Position: AdPositionTop},
		{ID: "ad-middle", Name: "Content Ad", Enabled: true, Code: "Middle Banner (300x250)", Position: AdPositionMiddle},
		{ID: "ad-bottom", Name: "Footer Ad", Enabled: true, Code: "Footer Banner (728x90)", Position: AdPositionBottom},
		{ID: "ad-inter", Name: "Download Interstitial", Enabled: true, Code: "Full Screen Ad", Position: AdPositionInterstitial},
	}
}
