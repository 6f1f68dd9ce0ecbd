package analysis

import (
	"strings"
	"unicode"
)

// stubNormalizer returns canned output, or splits on whitespace when no
// tokens are configured.
type stubNormalizer struct {
	tokens    []Token
	sentences []Sentence
	err       error
	calls     int
}

func (s *stubNormalizer) Tokenize(text string) ([]Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.tokens != nil {
		return s.tokens, nil
	}
	var out []Token
	for _, f := range strings.Fields(text) {
		out = append(out, Token{
			Text:     f,
			Lemma:    strings.ToLower(f),
			Category: CategoryNoun,
			IsAlpha:  isAlpha(f),
		})
	}
	return out, nil
}

func (s *stubNormalizer) Sentences(text string) ([]Sentence, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.sentences, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func noun(text, lemma string) Token {
	return Token{Text: text, Lemma: lemma, Category: CategoryNoun, IsAlpha: true}
}

func verb(text, lemma string) Token {
	return Token{Text: text, Lemma: lemma, Category: CategoryVerb, IsAlpha: true}
}
