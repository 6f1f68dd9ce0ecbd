// Package analysis implements the keyword matching core: keyword extraction,
// overlap scoring, fuzzy suggestions for missing keywords and resume section
// splitting. Every function here is pure over its inputs; the text normalizer
// and the semantic similarity service are injected collaborators.
package analysis

import (
	"context"
	"sort"
)

// Category is the coarse grammatical category of a token.
type Category string

const (
	CategoryNoun       Category = "NOUN"
	CategoryProperNoun Category = "PROPN"
	CategoryVerb       Category = "VERB"
	CategoryAdjective  Category = "ADJ"
	CategoryAdverb     Category = "ADV"
	CategoryNumber     Category = "NUM"
	CategoryPunct      Category = "PUNCT"
	CategoryOther      Category = "X"
)

// Entity labels consumed by the extractors.
const (
	LabelOrg    = "ORG"
	LabelGPE    = "GPE"
	LabelDate   = "DATE"
	LabelPerson = "PERSON"
)

// Token is one lexical unit produced by a Normalizer.
type Token struct {
	Text     string   `json:"text"`
	Lemma    string   `json:"lemma"`
	Category Category `json:"category"`
	IsStop   bool     `json:"is_stop"`
	IsAlpha  bool     `json:"is_alpha"`
}

// Entity is a named entity span with its label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Sentence is a sentence with its tokens and the entities found inside it.
type Sentence struct {
	Text     string   `json:"text"`
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// Normalizer turns raw text into tokens and sentences. Implementations are
// expected to be built once (model load) and reused across calls.
type Normalizer interface {
	Tokenize(text string) ([]Token, error)
	Sentences(text string) ([]Sentence, error)
}

// SemanticSimilarity scores two texts in [0,1] using sentence embeddings.
type SemanticSimilarity interface {
	Similarity(ctx context.Context, textA, textB string) (float64, error)
}

// KeywordSet is a set of normalized lowercase keywords.
type KeywordSet map[string]struct{}

// NewKeywordSet builds a set from the given words.
func NewKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, w := range words {
		set.Add(w)
	}
	return set
}

func (s KeywordSet) Add(word string) {
	s[word] = struct{}{}
}

func (s KeywordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s KeywordSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexicographic order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members present in both sets.
func (s KeywordSet) Intersect(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for w := range s {
		if other.Contains(w) {
			out.Add(w)
		}
	}
	return out
}

// Difference returns the members of s absent from other.
func (s KeywordSet) Difference(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for w := range s {
		if !other.Contains(w) {
			out.Add(w)
		}
	}
	return out
}
