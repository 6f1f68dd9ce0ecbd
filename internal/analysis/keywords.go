package analysis

import "strings"

// keywordCategories are the token categories kept as keywords.
var keywordCategories = map[Category]bool{
	CategoryNoun:       true,
	CategoryProperNoun: true,
	CategoryVerb:       true,
}

// ExtractKeywords returns the lowercased lemmas of every alphabetic,
// non-stopword noun, proper noun or verb in text. Empty text yields an empty set.
func ExtractKeywords(n Normalizer, text string) (KeywordSet, error) {
	keywords := make(KeywordSet)
	if strings.TrimSpace(text) == "" {
		return keywords, nil
	}

	tokens, err := n.Tokenize(text)
	if err != nil {
		return nil, &NormalizerError{Op: "tokenize", Cause: err}
	}

	for _, tok := range tokens {
		if !isKeyword(tok) {
			continue
		}
		keywords.Add(strings.ToLower(tok.Lemma))
	}

	return keywords, nil
}

func isKeyword(tok Token) bool {
	return keywordCategories[tok.Category] && !tok.IsStop && tok.IsAlpha && tok.Lemma != ""
}
