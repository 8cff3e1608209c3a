package seo_test

import (
	"testing"

	"github.com/hward/blogsmith/pkg/seo"
	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	keywords := seo.ExtractKeywords("the cat sat on the mat", 5)

	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "on")
	for _, kw := range keywords {
		assert.Contains(t, []string{"cat", "sat", "mat"}, kw)
	}
}

func TestExtractKeywords_TopNBound(t *testing.T) {
	texts := []string{
		"",
		"cat",
		"content marketing drives organic growth through keyword research and link building",
	}

	for _, text := range texts {
		for _, n := range []int{0, 1, 3, 10} {
			keywords := seo.ExtractKeywords(text, n)
			assert.LessOrEqual(t, len(keywords), n)
		}
	}
}

func TestExtractKeywords_Scoring(t *testing.T) {
	// "optimization" scores 1*12, "seo" scores 3*3
	keywords := seo.ExtractKeywords("seo seo seo optimization", 10)
	assert.Equal(t, []string{"optimization", "seo"}, keywords)
}

func TestExtractKeywords_DropsNumericTokens(t *testing.T) {
	keywords := seo.ExtractKeywords("ranking guide 2024 2024 2024", 10)
	assert.NotContains(t, keywords, "2024")
	assert.Contains(t, keywords, "ranking")
	assert.Contains(t, keywords, "guide")
}

func TestExtractKeywords_CustomStopwords(t *testing.T) {
	keywords := seo.ExtractKeywords("blog blog post post", 10, "blog")
	assert.Equal(t, []string{"post"}, keywords)
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, seo.ExtractKeywords("", 10))
}

func TestExtractKeywords_Idempotent(t *testing.T) {
	text := "content marketing content strategy for growing organic traffic"
	first := seo.ExtractKeywords(text, 5)
	second := seo.ExtractKeywords(text, 5)
	assert.Equal(t, first, second)
}
