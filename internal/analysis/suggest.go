package analysis

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	DefaultMaxSuggestions   = 2
	DefaultSuggestionCutoff = 0.7
)

// SuggestOptions tunes the suggestion engine.
type SuggestOptions struct {
	MaxPerKeyword int
	Cutoff        float64
}

// DefaultSuggestOptions returns two suggestions per keyword at a 0.7 cutoff.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{
		MaxPerKeyword: DefaultMaxSuggestions,
		Cutoff:        DefaultSuggestionCutoff,
	}
}

// SuggestionMap maps a missing keyword to the closest resume keywords, best first.
type SuggestionMap map[string][]string

// Keys returns the missing keywords that received suggestions, sorted.
func (s SuggestionMap) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type candidate struct {
	word  string
	ratio float64
}

// SuggestSimilarKeywords finds, for each missing keyword, resume keywords whose
// sequence-matcher ratio clears the cutoff. Keywords without a qualifying
// candidate are left out of the map. Unset options take their defaults.
func SuggestSimilarKeywords(missing, resume KeywordSet, opts SuggestOptions) SuggestionMap {
	if opts.MaxPerKeyword < 1 {
		opts.MaxPerKeyword = DefaultMaxSuggestions
	}
	// a cutoff outside (0,1] would accept every candidate or none
	if opts.Cutoff <= 0 || opts.Cutoff > 1 {
		opts.Cutoff = DefaultSuggestionCutoff
	}

	suggestions := make(SuggestionMap)
	if missing.Len() == 0 || resume.Len() == 0 {
		return suggestions
	}

	candidates := resume.Sorted()
	for _, word := range missing.Sorted() {
		if matches := closeMatches(word, candidates, opts); len(matches) > 0 {
			suggestions[word] = matches
		}
	}

	return suggestions
}

// closeMatches ranks possibilities against word. The word is the matcher's
// second sequence so its b-chain is built once; the cheap upper bounds are
// checked before the full ratio.
func closeMatches(word string, possibilities []string, opts SuggestOptions) []string {
	matcher := difflib.NewMatcher(nil, splitChars(word))

	var scored []candidate
	for _, p := range possibilities {
		matcher.SetSeq1(splitChars(p))
		if matcher.RealQuickRatio() < opts.Cutoff || matcher.QuickRatio() < opts.Cutoff {
			continue
		}
		if ratio := matcher.Ratio(); ratio >= opts.Cutoff {
			scored = append(scored, candidate{word: p, ratio: ratio})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ratio != scored[j].ratio {
			return scored[i].ratio > scored[j].ratio
		}
		return scored[i].word < scored[j].word
	})

	if len(scored) > opts.MaxPerKeyword {
		scored = scored[:opts.MaxPerKeyword]
	}

	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.word
	}
	return out
}

// SequenceRatio is the difflib ratio between two strings, compared rune by rune.
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	return strings.Split(s, "")
}
