package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSectionHeaders is the header vocabulary recognised in resumes and job
// descriptions.
var DefaultSectionHeaders = []string{
	"skills",
	"education",
	"experience",
	"work experience",
	"professional experience",
	"projects",
	"certifications",
	"summary",
	"objective",
	"achievements",
	"keywords",
}

const (
	SectionSkills         = "skills"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionWorkExperience = "work experience"
)

// Section is one header occurrence and the text that follows it.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// SectionSplitter partitions text into sections keyed by header name. A header
// must occupy its whole line, optionally followed by ':' or '-'.
type SectionSplitter struct {
	headers []string
	pattern *regexp.Regexp
}

// NewSectionSplitter builds a splitter for the given header vocabulary.
// Headers are matched case-insensitively; blank and duplicate entries are ignored.
func NewSectionSplitter(headers []string) *SectionSplitter {
	seen := make(map[string]bool)
	var vocab []string
	for _, h := range headers {
		h = normalizeHeader(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		vocab = append(vocab, h)
	}

	s := &SectionSplitter{headers: vocab}
	if len(vocab) == 0 {
		return s
	}

	// longest first so the alternation prefers "work experience" over "experience"
	sorted := append([]string(nil), vocab...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, h := range sorted {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(h), " ", `[\s\p{Zs}]+`)
	}
	// \s in RE2 is ASCII only; \p{Zs} adds no-break and other Unicode spaces
	const space = `[\s\p{Zs}]*`
	s.pattern = regexp.MustCompile(`(?i)^` + space + `(` + strings.Join(quoted, "|") + `)` + space + `[:\-]?` + space + `$`)

	return s
}

// Headers returns the normalized vocabulary.
func (s *SectionSplitter) Headers() []string {
	return append([]string(nil), s.headers...)
}

// SplitAll returns every header occurrence in document order, including
// repeated headers.
func (s *SectionSplitter) SplitAll(text string) []Section {
	if s.pattern == nil || text == "" {
		return nil
	}

	type headerLine struct {
		name       string
		start, end int // byte offsets of the header line, end excludes the newline
	}

	var found []headerLine
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		body := strings.TrimSuffix(line, "\n")
		if m := s.pattern.FindStringSubmatch(body); m != nil {
			found = append(found, headerLine{
				name:  normalizeHeader(m[1]),
				start: offset,
				end:   offset + len(body),
			})
		}
		offset += len(line)
	}

	sections := make([]Section, 0, len(found))
	for i, h := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		sections = append(sections, Section{
			Name: h.name,
			Text: strings.TrimSpace(text[h.end:end]),
		})
	}
	return sections
}

// Preamble returns the text before the first header, or the whole text when
// there is no header.
func (s *SectionSplitter) Preamble(text string) string {
	if s.pattern == nil {
		return strings.TrimSpace(text)
	}

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if s.pattern.MatchString(strings.TrimSuffix(line, "\n")) {
			return strings.TrimSpace(text[:offset])
		}
		offset += len(line)
	}
	return strings.TrimSpace(text)
}

// Split maps each header name to its section text. When a header repeats, the
// later occurrence wins.
func (s *SectionSplitter) Split(text string) map[string]string {
	out := make(map[string]string)
	for _, sec := range s.SplitAll(text) {
		out[sec.Name] = sec.Text
	}
	return out
}

// ExtractSection looks up one section by name, case-insensitively.
func (s *SectionSplitter) ExtractSection(text, name string) (string, bool) {
	sec, ok := s.Split(text)[normalizeHeader(name)]
	return sec, ok
}

func (s *SectionSplitter) ExtractSkills(text string) (string, bool) {
	return s.ExtractSection(text, SectionSkills)
}

func (s *SectionSplitter) ExtractEducation(text string) (string, bool) {
	return s.ExtractSection(text, SectionEducation)
}

// ExtractExperience returns the "experience" section, falling back to
// "work experience" when it is absent or empty.
func (s *SectionSplitter) ExtractExperience(text string) (string, bool) {
	sections := s.Split(text)
	if exp := sections[SectionExperience]; exp != "" {
		return exp, true
	}
	exp, ok := sections[SectionWorkExperience]
	return exp, ok
}

// normalizeHeader lowercases a header and collapses its inner whitespace.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

var defaultSplitter = NewSectionSplitter(DefaultSectionHeaders)

// SplitIntoSections splits text with the default header vocabulary.
func SplitIntoSections(text string) map[string]string {
	return defaultSplitter.Split(text)
}

// ExtractSection looks up a section using the default header vocabulary.
func ExtractSection(text, name string) (string, bool) {
	return defaultSplitter.ExtractSection(text, name)
}

func ExtractSkills(text string) (string, bool) {
	return defaultSplitter.ExtractSkills(text)
}

func ExtractEducation(text string) (string, bool) {
	return defaultSplitter.ExtractEducation(text)
}

func ExtractExperience(text string) (string, bool) {
	return defaultSplitter.ExtractExperience(text)
}
