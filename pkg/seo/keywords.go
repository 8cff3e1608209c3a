package seo

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`\b\w{3,}\b`)

// Common English stopwords excluded from keyword scoring.
var stopwords = []string{
	"the", "and", "of", "to", "in", "is", "it", "that", "for",
	"you", "was", "on", "are", "with", "as", "at", "be",
	"this", "have", "from", "or", "an", "by", "not",
}

// ExtractKeywords returns up to topN keywords from text, ranked by a
// frequency-times-length score. Stopwords and purely numeric tokens are
// dropped. Ties keep encounter order. Extra stopwords may be supplied
// for domain-specific filtering.
func ExtractKeywords(text string, topN int, extraStopwords ...string) []string {
	if topN <= 0 {
		return nil
	}

	stop := make(map[string]bool, len(stopwords)+len(extraStopwords))
	for _, w := range stopwords {
		stop[w] = true
	}
	for _, w := range extraStopwords {
		stop[strings.ToLower(w)] = true
	}

	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if stop[tok] || isNumeric(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Score: frequency * length, highest first
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]]*len(order[i]) > counts[order[j]]*len(order[j])
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
