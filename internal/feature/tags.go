package feature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yatagawa/anirec/internal/model"
)

var yearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// BuildTags flattens one record into weighted tag text. Important fields
// are repeated so they dominate the TF-IDF weights: title 3x, genre terms
// 2x, everything else once. Score, episode count and air year are bucketed
// into categorical tags.
func BuildTags(rec model.AnimeRecord) string {
	var tags []string

	if rec.Title != "" {
		for i := 0; i < 3; i++ {
			tags = append(tags, rec.Title)
		}
	}
	if rec.Genre != "" {
		genres := strings.Fields(strings.ReplaceAll(rec.Genre, ",", " "))
		for i := 0; i < 2; i++ {
			tags = append(tags, genres...)
		}
	}
	if rec.Type != "" {
		tags = append(tags, rec.Type)
	}
	if rec.Source != "" {
		tags = append(tags, rec.Source)
	}
	if rec.Studio != "" {
		tags = append(tags, strings.ReplaceAll(rec.Studio, ",", " "))
	}
	if tag := scoreTag(rec.Score); tag != "" {
		tags = append(tags, tag)
	}
	if tag := episodeTag(rec.Episodes); tag != "" {
		tags = append(tags, tag)
	}
	if tag := eraTag(rec.Aired); tag != "" {
		tags = append(tags, tag)
	}
	return strings.Join(tags, " ")
}

func scoreTag(score *float64) string {
	if score == nil {
		return ""
	}
	switch {
	case *score >= 8.0:
		return "highly_rated"
	case *score >= 7.0:
		return "well_rated"
	case *score >= 6.0:
		return "decent_rated"
	}
	return ""
}

func episodeTag(episodes *int64) string {
	if episodes == nil {
		return ""
	}
	switch {
	case *episodes == 1:
		return "movie_format"
	case *episodes <= 13:
		return "short_series"
	case *episodes <= 26:
		return "standard_series"
	}
	return "long_series"
}

// eraTag buckets by the first plausible year found in the aired string.
func eraTag(aired string) string {
	if aired == "" {
		return ""
	}
	match := yearRe.FindString(aired)
	if match == "" {
		return ""
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return ""
	}
	switch {
	case year >= 2020:
		return "recent_anime"
	case year >= 2010:
		return "modern_era"
	case year >= 2000:
		return "early_2000s"
	}
	return "classic_anime"
}
