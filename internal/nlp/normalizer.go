// Package nlp provides the English text normalizer used by the analysis core.
package nlp

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

// Normalizer tokenizes, tags and lemmatizes English text. Construction loads
// the lemma dictionary, which takes a few seconds; build one per process and
// share it. A Normalizer is safe for concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
	stopwords  map[string]bool
	dates      *dateTagger
	orgs       *orgTagger
}

var _ analysis.Normalizer = (*Normalizer)(nil)

// NewNormalizer loads the English lemma dictionary and entity taggers.
func NewNormalizer() (*Normalizer, error) {
	start := time.Now()

	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemma dictionary: %w", err)
	}

	log.Printf("📚 NLP normalizer loaded in %s\n", time.Since(start).Round(time.Millisecond))

	return &Normalizer{
		lemmatizer: lemmatizer,
		stopwords:  englishStopwords,
		dates:      newDateTagger(),
		orgs:       newOrgTagger(),
	}, nil
}

// Tokenize implements analysis.Normalizer.
func (n *Normalizer) Tokenize(text string) ([]analysis.Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	return n.convertTokens(doc.Tokens()), nil
}

// Sentences implements analysis.Normalizer.
func (n *Normalizer) Sentences(text string) ([]analysis.Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}

	var sentences []analysis.Sentence
	for _, sent := range doc.Sentences() {
		if strings.TrimSpace(sent.Text) == "" {
			continue
		}

		sentDoc, err := prose.NewDocument(sent.Text, prose.WithSegmentation(false))
		if err != nil {
			return nil, fmt.Errorf("failed to tag sentence: %w", err)
		}

		sentences = append(sentences, analysis.Sentence{
			Text:     sent.Text,
			Tokens:   n.convertTokens(sentDoc.Tokens()),
			Entities: n.entities(sent.Text, sentDoc.Entities()),
		})
	}

	return sentences, nil
}

func (n *Normalizer) convertTokens(tokens []prose.Token) []analysis.Token {
	out := make([]analysis.Token, 0, len(tokens))
	for _, tok := range tokens {
		category := categoryForTag(tok.Tag)
		out = append(out, analysis.Token{
			Text:     tok.Text,
			Lemma:    n.lemma(tok.Text, category),
			Category: category,
			IsStop:   n.stopwords[strings.ToLower(tok.Text)],
			IsAlpha:  isAlpha(tok.Text),
		})
	}
	return out
}

// lemma returns the dictionary form of a common word. Proper nouns and
// acronyms keep their surface form, so "AWS" stays "aws" and "Pandas" stays
// "pandas".
func (n *Normalizer) lemma(text string, category analysis.Category) string {
	lower := strings.ToLower(text)
	if category == analysis.CategoryProperNoun || isAcronym(text) || !isAlpha(lower) {
		return lower
	}
	return strings.ToLower(n.lemmatizer.Lemma(lower))
}

// entities merges the tagger's entities with date and organization spans,
// ordered by position with overlaps resolved in favour of the longer span.
func (n *Normalizer) entities(text string, tagged []prose.Entity) []analysis.Entity {
	var spans []span
	cursor := 0
	for _, ent := range tagged {
		idx := strings.Index(text[cursor:], ent.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		spans = append(spans, span{start: start, end: start + len(ent.Text), label: entityLabel(ent.Label)})
		cursor = start + len(ent.Text)
	}
	spans = append(spans, n.dates.find(text)...)
	spans = append(spans, n.orgs.find(text)...)

	resolved := resolveOverlaps(spans)
	out := make([]analysis.Entity, 0, len(resolved))
	for _, s := range resolved {
		out = append(out, analysis.Entity{Text: text[s.start:s.end], Label: s.label})
	}
	return out
}

// categoryForTag maps a Penn Treebank tag to a coarse category.
func categoryForTag(tag string) analysis.Category {
	switch {
	case tag == "NN" || tag == "NNS":
		return analysis.CategoryNoun
	case tag == "NNP" || tag == "NNPS":
		return analysis.CategoryProperNoun
	case strings.HasPrefix(tag, "VB"):
		return analysis.CategoryVerb
	case strings.HasPrefix(tag, "JJ"):
		return analysis.CategoryAdjective
	case strings.HasPrefix(tag, "RB"):
		return analysis.CategoryAdverb
	case tag == "CD":
		return analysis.CategoryNumber
	case isPunctTag(tag):
		return analysis.CategoryPunct
	default:
		return analysis.CategoryOther
	}
}

func isPunctTag(tag string) bool {
	switch tag {
	case ".", ",", ":", "(", ")", "``", "''", "#", "$", "-LRB-", "-RRB-", "SYM":
		return true
	}
	return false
}

// isAcronym reports an all-caps word of two or more letters.
func isAcronym(s string) bool {
	if len(s) < 2 || !isAlpha(s) {
		return false
	}
	return strings.ToUpper(s) == s
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
