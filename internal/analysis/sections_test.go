package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntoSections_Example(t *testing.T) {
	got := SplitIntoSections("Skills:\nPython, SQL\nEducation:\nBSc CS")

	assert.Equal(t, map[string]string{
		"skills":    "Python, SQL",
		"education": "BSc CS",
	}, got)
}

func TestSplitIntoSections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected map[string]string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: map[string]string{},
		},
		{
			name:     "no headers",
			text:     "Just a paragraph about me.\nAnother line.",
			expected: map[string]string{},
		},
		{
			name:     "header mid sentence is not a boundary",
			text:     "Summary\nMy skills include Python and SQL.\nI love experience design.",
			expected: map[string]string{"summary": "My skills include Python and SQL.\nI love experience design."},
		},
		{
			name:     "header followed by content on same line is not a header",
			text:     "Skills: Python, SQL\nEducation\nBSc",
			expected: map[string]string{"education": "BSc"},
		},
		{
			name: "case insensitive with dash and indentation",
			text: "  WORK EXPERIENCE -\nAcme Corp 2019-2021\n\tProjects\nCompiler",
			expected: map[string]string{
				"work experience": "Acme Corp 2019-2021",
				"projects":        "Compiler",
			},
		},
		{
			name: "multi-word headers are not split into shorter ones",
			text: "Professional Experience:\nLead engineer\nExperience\nIntern",
			expected: map[string]string{
				"professional experience": "Lead engineer",
				"experience":              "Intern",
			},
		},
		{
			name: "repeated header keeps the later span",
			text: "Experience\nFirst job\nSkills\nGo\nExperience\nSecond job",
			expected: map[string]string{
				"experience": "Second job",
				"skills":     "Go",
			},
		},
		{
			name:     "header at end of text has empty span",
			text:     "Intro text\nKeywords:",
			expected: map[string]string{"keywords": ""},
		},
		{
			name: "unicode spaces around header",
			text: "Skills\u00a0\nPython\n\u2003Education\u202f:\nMSc\nWork\u00a0Experience\nAcme",
			expected: map[string]string{
				"skills":          "Python",
				"education":       "MSc",
				"work experience": "Acme",
			},
		},
		{
			name: "windows line endings",
			text: "Skills:\r\nPython\r\nEducation\r\nMSc",
			expected: map[string]string{
				"skills":    "Python",
				"education": "MSc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitIntoSections(tt.text))
		})
	}
}

func TestSplitIntoSections_Deterministic(t *testing.T) {
	text := "Summary\nGopher\nSkills\nGo, SQL\nCertifications\nCKA"
	first := SplitIntoSections(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SplitIntoSections(text))
	}
}

func TestSectionSplitter_SplitAllKeepsRepeats(t *testing.T) {
	s := NewSectionSplitter(DefaultSectionHeaders)

	got := s.SplitAll("Experience\nFirst job\nExperience\nSecond job")

	assert.Equal(t, []Section{
		{Name: "experience", Text: "First job"},
		{Name: "experience", Text: "Second job"},
	}, got)
}

func TestSectionSplitter_CustomVocabulary(t *testing.T) {
	s := NewSectionSplitter([]string{" Languages ", "languages", "", "Hobbies"})

	assert.Equal(t, []string{"languages", "hobbies"}, s.Headers())
	assert.Equal(t, map[string]string{
		"languages": "English, Spanish\nSkills\nGo",
		"hobbies":   "Chess",
	}, s.Split("Languages:\nEnglish, Spanish\nSkills\nGo\nHobbies\nChess"))
}

func TestSectionSplitter_EmptyVocabulary(t *testing.T) {
	s := NewSectionSplitter(nil)
	assert.Empty(t, s.Split("Skills\nGo\n\n"))
}

func TestExtractSectionLookups(t *testing.T) {
	text := "Skills\nGo, Python\nEducation:\nBSc Computer Science\nWork Experience\nAcme 2020"

	skills, ok := ExtractSkills(text)
	assert.True(t, ok)
	assert.Equal(t, "Go, Python", skills)

	edu, ok := ExtractEducation(text)
	assert.True(t, ok)
	assert.Equal(t, "BSc Computer Science", edu)

	exp, ok := ExtractExperience(text)
	assert.True(t, ok)
	assert.Equal(t, "Acme 2020", exp)

	sec, ok := ExtractSection(text, "SKILLS")
	assert.True(t, ok)
	assert.Equal(t, "Go, Python", sec)

	_, ok = ExtractSection(text, "projects")
	assert.False(t, ok)
}

func TestExtractExperience_PrefersExperience(t *testing.T) {
	text := "Experience\nSenior role\nWork Experience\nJunior role"

	exp, ok := ExtractExperience(text)
	assert.True(t, ok)
	assert.Equal(t, "Senior role", exp)
}

func TestExtractExperience_EmptyExperienceFallsBack(t *testing.T) {
	text := "Experience\nWork Experience\nJunior role"

	exp, ok := ExtractExperience(text)
	assert.True(t, ok)
	assert.Equal(t, "Junior role", exp)
}

func TestSectionSplitter_Preamble(t *testing.T) {
	s := NewSectionSplitter(DefaultSectionHeaders)

	assert.Equal(t, "Senior Go Engineer\nRemote", s.Preamble("Senior Go Engineer\nRemote\nSkills\nGo"))
	assert.Equal(t, "", s.Preamble("Skills\nGo"))
	assert.Equal(t, "No headers here", s.Preamble("  No headers here \n"))
	assert.Equal(t, "anything", NewSectionSplitter(nil).Preamble("anything"))
}
