package analysis

import (
	"sort"
	"strings"
)

// DefaultSkillKeywords is the skill vocabulary used by ExtractSkillsNLP.
var DefaultSkillKeywords = []string{
	"python", "java", "c++", "machine learning", "data analysis", "project management", "sql", "excel", "communication",
	"leadership", "teamwork", "problem solving", "cloud", "aws", "azure", "docker", "kubernetes", "react", "node", "django",
}

// educationLabels are the entity labels reported as education entities.
var educationLabels = map[string]bool{
	LabelOrg:    true,
	LabelGPE:    true,
	LabelDate:   true,
	LabelPerson: true,
}

// ExtractSkillsNLP finds skills from vocab in text. A token whose surface text
// equals a vocabulary entry is reported as written; a vocabulary phrase found
// anywhere in the lowercased text is reported as listed. The result is sorted.
func ExtractSkillsNLP(n Normalizer, text string, vocab []string) ([]string, error) {
	if strings.TrimSpace(text) == "" || len(vocab) == 0 {
		return []string{}, nil
	}

	lowerVocab := make(map[string]bool, len(vocab))
	for _, skill := range vocab {
		lowerVocab[strings.ToLower(skill)] = true
	}

	tokens, err := n.Tokenize(text)
	if err != nil {
		return nil, &NormalizerError{Op: "tokenize", Cause: err}
	}

	found := make(map[string]bool)
	for _, tok := range tokens {
		if lowerVocab[strings.ToLower(tok.Text)] {
			found[tok.Text] = true
		}
	}

	// multi-word skills never appear as a single token
	lowerText := strings.ToLower(text)
	for _, skill := range vocab {
		if strings.Contains(lowerText, strings.ToLower(skill)) {
			found[skill] = true
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills, nil
}

// ExtractEducationEntities returns the text of every ORG, GPE, DATE and PERSON
// entity in document order.
func ExtractEducationEntities(n Normalizer, text string) ([]string, error) {
	entities := []string{}
	if strings.TrimSpace(text) == "" {
		return entities, nil
	}

	sentences, err := n.Sentences(text)
	if err != nil {
		return nil, &NormalizerError{Op: "sentences", Cause: err}
	}

	for _, sent := range sentences {
		for _, ent := range sent.Entities {
			if educationLabels[ent.Label] {
				entities = append(entities, ent.Text)
			}
		}
	}
	return entities, nil
}

// ExtractExperienceSentences returns the sentences that contain both a verb
// and a date entity, trimmed, in document order.
func ExtractExperienceSentences(n Normalizer, text string) ([]string, error) {
	experience := []string{}
	if strings.TrimSpace(text) == "" {
		return experience, nil
	}

	sentences, err := n.Sentences(text)
	if err != nil {
		return nil, &NormalizerError{Op: "sentences", Cause: err}
	}

	for _, sent := range sentences {
		if hasVerb(sent.Tokens) && hasLabel(sent.Entities, LabelDate) {
			experience = append(experience, strings.TrimSpace(sent.Text))
		}
	}
	return experience, nil
}

func hasVerb(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.Category == CategoryVerb {
			return true
		}
	}
	return false
}

func hasLabel(entities []Entity, label string) bool {
	for _, ent := range entities {
		if ent.Label == label {
			return true
		}
	}
	return false
}
