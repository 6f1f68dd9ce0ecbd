package nlp

import (
	"regexp"
	"sort"

	"github.com/araddon/dateparse"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

type span struct {
	start, end int
	label      string
	// pattern marks spans from the regex taggers, which win exact ties
	pattern bool
}

// resolveOverlaps orders spans by position and drops any span that overlaps
// an earlier or longer one. For the same text a tagger span beats a model span.
func resolveOverlaps(spans []span) []span {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		li, lj := spans[i].end-spans[i].start, spans[j].end-spans[j].start
		if li != lj {
			return li > lj
		}
		return spans[i].pattern && !spans[j].pattern
	})

	var out []span
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		out = append(out, s)
		lastEnd = s.end
	}
	return out
}

// modelLabels folds the tagger model's organisation-like labels into ORG.
var modelLabels = map[string]string{
	"FACILITY":     analysis.LabelOrg,
	"ORGANIZATION": analysis.LabelOrg,
	"GSP":          analysis.LabelGPE,
}

func entityLabel(label string) string {
	if mapped, ok := modelLabels[label]; ok {
		return mapped
	}
	return label
}

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// dateTagger finds DATE spans. Numeric dates are only accepted when they parse.
type dateTagger struct {
	textual []*regexp.Regexp
	numeric *regexp.Regexp
}

func newDateTagger() *dateTagger {
	return &dateTagger{
		textual: []*regexp.Regexp{
			// March 2021, Sept. 5, 2019, Dec 2020
			regexp.MustCompile(`(?i)\b` + monthPattern + `\.?(?:\s+\d{1,2}(?:st|nd|rd|th)?,?)?\s+(?:19|20)\d{2}\b`),
			// 5 years, 18 months, 3+ years
			regexp.MustCompile(`(?i)\b\d{1,2}\+?\s+(?:years?|months?)\b`),
			// 2019 - 2021, 2019–present
			regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:-|–|to)\s*(?:(?:19|20)\d{2}|present|current|now)\b`),
			regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
		},
		numeric: regexp.MustCompile(`\b(?:\d{4}-\d{1,2}-\d{1,2}|\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}/\d{4})\b`),
	}
}

func (d *dateTagger) find(text string) []span {
	var spans []span
	for _, re := range d.textual {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], label: analysis.LabelDate, pattern: true})
		}
	}
	for _, loc := range d.numeric.FindAllStringIndex(text, -1) {
		if _, err := dateparse.ParseAny(text[loc[0]:loc[1]]); err != nil {
			continue
		}
		spans = append(spans, span{start: loc[0], end: loc[1], label: analysis.LabelDate, pattern: true})
	}
	return spans
}

// orgTagger finds ORG spans for institutions and companies by their suffix or
// "University of ..." form.
type orgTagger struct {
	patterns []*regexp.Regexp
}

func newOrgTagger() *orgTagger {
	return &orgTagger{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:University|Institute|College|School|Academy) of(?: the)?(?: [A-Z][\w&-]*)+`),
			regexp.MustCompile(`\b(?:[A-Z][\w&-]*\s+){1,4}(?:University|College|Institute|School|Academy|Inc\.?|Corp\.?|Corporation|LLC|Ltd\.?|Technologies|Labs|Group)\b`),
		},
	}
}

func (o *orgTagger) find(text string) []span {
	var spans []span
	for _, re := range o.patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], label: analysis.LabelOrg, pattern: true})
		}
	}
	return spans
}
