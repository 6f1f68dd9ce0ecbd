package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords_FiltersTokens(t *testing.T) {
	n := &stubNormalizer{tokens: []Token{
		verb("Managed", "manage"),
		noun("Engineers", "engineer"),
		{Text: "Google", Lemma: "Google", Category: CategoryProperNoun, IsAlpha: true},
		{Text: "quickly", Lemma: "quickly", Category: CategoryAdverb, IsAlpha: true},
		{Text: "strong", Lemma: "strong", Category: CategoryAdjective, IsAlpha: true},
		{Text: "the", Lemma: "the", Category: CategoryOther, IsStop: true, IsAlpha: true},
		{Text: "have", Lemma: "have", Category: CategoryVerb, IsStop: true, IsAlpha: true},
		{Text: "5G", Lemma: "5g", Category: CategoryNoun, IsAlpha: false},
		{Text: "2021", Lemma: "2021", Category: CategoryNumber, IsAlpha: false},
		noun("engineer", "engineer"),
	}}

	keywords, err := ExtractKeywords(n, "Managed engineers at Google")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"manage", "engineer", "google"}, keywords.Sorted())
}

func TestExtractKeywords_EmptyText(t *testing.T) {
	n := &stubNormalizer{}

	keywords, err := ExtractKeywords(n, "")
	require.NoError(t, err)
	assert.NotNil(t, keywords)
	assert.Equal(t, 0, keywords.Len())
	assert.Equal(t, 0, n.calls, "normalizer should not be invoked for empty text")
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	n := &stubNormalizer{}
	text := "Python SQL lead Python"

	first, err := ExtractKeywords(n, text)
	require.NoError(t, err)
	second, err := ExtractKeywords(n, text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"lead", "python", "sql"}, first.Sorted())
}

func TestExtractKeywords_NormalizerFailure(t *testing.T) {
	cause := errors.New("model not loaded")
	n := &stubNormalizer{err: cause}

	keywords, err := ExtractKeywords(n, "some text")
	assert.Nil(t, keywords)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var nErr *NormalizerError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, "tokenize", nErr.Op)
}
