package seo

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hward/blogsmith/internal/models"
)

// Reading level labels assigned by CalculateReadability.
const (
	LevelEasy       = "Easy"
	LevelHighSchool = "High School"
	LevelCollege    = "College"
)

var sentenceEnders = regexp.MustCompile(`[.!?]`)

// CalculateReadability computes word and sentence counts for text and
// derives a coarse reading level from the average sentence length
// (over 20 words per sentence reads at college level, over 15 at high
// school level). Defined for empty input: all zeros, level Easy.
func CalculateReadability(text string) models.ReadabilityReport {
	words := strings.Fields(text)
	wordCount := len(words)

	sentenceCount := 0
	for _, s := range sentenceEnders.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	var avgSentence float64
	if sentenceCount > 0 {
		avgSentence = float64(wordCount) / float64(sentenceCount)
	}

	var avgWord float64
	if wordCount > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avgWord = float64(total) / float64(wordCount)
	}

	level := LevelEasy
	switch {
	case avgSentence > 20:
		level = LevelCollege
	case avgSentence > 15:
		level = LevelHighSchool
	}

	return models.ReadabilityReport{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: round1(avgSentence),
		AvgWordLength:     round1(avgWord),
		ReadingLevel:      level,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
