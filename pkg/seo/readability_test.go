package seo_test

import (
	"testing"

	"github.com/hward/blogsmith/pkg/seo"
	"github.com/stretchr/testify/assert"
)

func TestCalculateReadability_EmptyInput(t *testing.T) {
	report := seo.CalculateReadability("")

	assert.Equal(t, 0, report.WordCount)
	assert.Equal(t, 0, report.SentenceCount)
	assert.Equal(t, 0.0, report.AvgSentenceLength)
	assert.Equal(t, 0.0, report.AvgWordLength)
	assert.Equal(t, seo.LevelEasy, report.ReadingLevel)
}

func TestCalculateReadability_Counts(t *testing.T) {
	report := seo.CalculateReadability("The cat sat. The dog ran.")

	assert.Equal(t, 6, report.WordCount)
	assert.Equal(t, 2, report.SentenceCount)
	assert.Equal(t, 3.0, report.AvgSentenceLength)
	assert.Equal(t, seo.LevelEasy, report.ReadingLevel)
}

func TestCalculateReadability_Levels(t *testing.T) {
	tests := []struct {
		name          string
		wordsPerSent  int
		expectedLevel string
	}{
		{"short sentences", 10, seo.LevelEasy},
		{"boundary stays easy", 15, seo.LevelEasy},
		{"medium sentences", 18, seo.LevelHighSchool},
		{"boundary stays high school", 20, seo.LevelHighSchool},
		{"long sentences", 25, seo.LevelCollege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := sentenceOfWords(tt.wordsPerSent)
			report := seo.CalculateReadability(text)
			assert.Equal(t, tt.expectedLevel, report.ReadingLevel)
			assert.Equal(t, tt.wordsPerSent, report.WordCount)
		})
	}
}

func TestCalculateReadability_Monotonic(t *testing.T) {
	tiers := map[string]int{
		seo.LevelEasy:       0,
		seo.LevelHighSchool: 1,
		seo.LevelCollege:    2,
	}

	prev := -1
	for n := 1; n <= 30; n++ {
		report := seo.CalculateReadability(sentenceOfWords(n))
		tier := tiers[report.ReadingLevel]
		assert.GreaterOrEqual(t, tier, prev, "level dropped at %d words per sentence", n)
		prev = tier
	}
}

func sentenceOfWords(n int) string {
	words := make([]byte, 0, n*5)
	for i := 0; i < n; i++ {
		words = append(words, "word "...)
	}
	return string(words[:len(words)-1]) + "."
}
