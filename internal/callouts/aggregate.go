package callouts

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MaxCloudWords caps the word cloud.
	MaxCloudWords = 20
	minTokenLen   = 3
)

// ErrNoData means no category produced a usable token.
var ErrNoData = errors.New("no word data")

// WordFrequency is a trait token and how often it appears.
type WordFrequency struct {
	Word string `json:"word"`
	Freq int    `json:"freq"`
}

// PlaceholderWords are shown when the collection yields no tokens.
var PlaceholderWords = []string{
	"Kind", "Caring", "Helpful", "Brave", "Creative",
	"Honest", "Loyal", "Generous", "Patient", "Respectful",
}

// WordFrequencies counts lowercase, whitespace-separated category tokens of
// three or more characters and returns the top MaxCloudWords, most frequent
// first. Equal counts keep first-seen order.
func WordFrequencies(callouts []*Callout) ([]WordFrequency, error) {
	counts := make(map[string]int)
	var order []string

	for _, c := range callouts {
		for _, category := range c.Categories {
			for _, token := range strings.Fields(strings.ToLower(category)) {
				if utf8.RuneCountInString(token) < minTokenLen {
					continue
				}
				if _, seen := counts[token]; !seen {
					order = append(order, token)
				}
				counts[token]++
			}
		}
	}

	if len(order) == 0 {
		return nil, ErrNoData
	}

	words := make([]WordFrequency, len(order))
	for i, token := range order {
		words[i] = WordFrequency{Word: token, Freq: counts[token]}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Freq > words[j].Freq
	})

	if len(words) > MaxCloudWords {
		words = words[:MaxCloudWords]
	}
	return words, nil
}

// Placeholder returns PlaceholderWords with a frequency of one each.
func Placeholder() []WordFrequency {
	words := make([]WordFrequency, len(PlaceholderWords))
	for i, w := range PlaceholderWords {
		words[i] = WordFrequency{Word: w, Freq: 1}
	}
	return words
}
