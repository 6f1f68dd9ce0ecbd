package analysis

import (
	"fmt"
	"math"
)

// Report is the combined result of comparing a resume against a job description.
type Report struct {
	MatchedCount           int               `json:"matched_count"`
	TotalJDKeywords        int               `json:"total_jd_keywords"`
	Score                  float64           `json:"score"`
	ScorePercent           float64           `json:"score_percent"`
	MatchedKeywords        []string          `json:"matched_keywords"`
	MissingKeywords        []string          `json:"missing_keywords"`
	Suggestions            SuggestionMap     `json:"suggestions"`
	SemanticSimilarity     *float64          `json:"semantic_similarity,omitempty"`
	Skills                 []string          `json:"skills"`
	EducationEntities      []string          `json:"education_entities"`
	ExperienceSentences    []string          `json:"experience_sentences"`
	ResumeSections         map[string]string `json:"resume_sections"`
	JobDescriptionSections map[string]string `json:"job_description_sections"`
}

// ResumeProfile holds what the NLP extractors find in a single document.
type ResumeProfile struct {
	Skills              []string `json:"skills"`
	EducationEntities   []string `json:"education_entities"`
	ExperienceSentences []string `json:"experience_sentences"`
}

// Analyzer bundles a normalizer with the tunable parts of the core.
type Analyzer struct {
	normalizer Normalizer
	splitter   *SectionSplitter
	skills     []string
	suggest    SuggestOptions
}

// Option configures an Analyzer.
type Option func(*Analyzer)

func WithSectionHeaders(headers []string) Option {
	return func(a *Analyzer) {
		a.splitter = NewSectionSplitter(headers)
	}
}

func WithSkillKeywords(skills []string) Option {
	return func(a *Analyzer) {
		a.skills = append([]string(nil), skills...)
	}
}

func WithSuggestOptions(opts SuggestOptions) Option {
	return func(a *Analyzer) {
		a.suggest = opts
	}
}

// NewAnalyzer creates an Analyzer around n using the default vocabularies.
func NewAnalyzer(n Normalizer, opts ...Option) *Analyzer {
	a := &Analyzer{
		normalizer: n,
		splitter:   defaultSplitter,
		skills:     DefaultSkillKeywords,
		suggest:    DefaultSuggestOptions(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Splitter() *SectionSplitter {
	return a.splitter
}

func (a *Analyzer) SuggestOptions() SuggestOptions {
	return a.suggest
}

func (a *Analyzer) ExtractKeywords(text string) (KeywordSet, error) {
	return ExtractKeywords(a.normalizer, text)
}

// Profile runs the skill, education and experience extractors over text.
func (a *Analyzer) Profile(text string) (*ResumeProfile, error) {
	skills, err := ExtractSkillsNLP(a.normalizer, text, a.skills)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skills: %w", err)
	}

	education, err := ExtractEducationEntities(a.normalizer, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract education entities: %w", err)
	}

	experience, err := ExtractExperienceSentences(a.normalizer, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract experience sentences: %w", err)
	}

	return &ResumeProfile{
		Skills:              skills,
		EducationEntities:   education,
		ExperienceSentences: experience,
	}, nil
}

// Compare produces the lexical part of a Report. SemanticSimilarity is left
// nil; callers holding a SemanticSimilarity service fill it in.
func (a *Analyzer) Compare(resumeText, jdText string) (*Report, error) {
	resumeKeywords, err := a.ExtractKeywords(resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume keywords: %w", err)
	}

	jdKeywords, err := a.ExtractKeywords(jdText)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description keywords: %w", err)
	}

	overlap := CalculateOverlap(resumeKeywords, jdKeywords)
	suggestions := SuggestSimilarKeywords(overlap.Missing, resumeKeywords, a.suggest)

	profile, err := a.Profile(resumeText)
	if err != nil {
		return nil, err
	}

	return &Report{
		MatchedCount:           overlap.Matched,
		TotalJDKeywords:        overlap.Total,
		Score:                  overlap.Score,
		ScorePercent:           math.Round(overlap.Score*1000) / 10,
		MatchedKeywords:        jdKeywords.Intersect(resumeKeywords).Sorted(),
		MissingKeywords:        overlap.Missing.Sorted(),
		Suggestions:            suggestions,
		Skills:                 profile.Skills,
		EducationEntities:      profile.EducationEntities,
		ExperienceSentences:    profile.ExperienceSentences,
		ResumeSections:         a.splitter.Split(resumeText),
		JobDescriptionSections: a.splitter.Split(jdText),
	}, nil
}
