package analysis

// Overlap is the match statistics of a resume keyword set against a job
// description keyword set.
type Overlap struct {
	Matched int        `json:"matched_count"`
	Total   int        `json:"total_jd_keywords"`
	Score   float64    `json:"score"`
	Missing KeywordSet `json:"-"`
}

// CalculateOverlap compares resume keywords against job description keywords.
// Score is matched/total, or 0.0 when the job description has no keywords.
func CalculateOverlap(resume, jd KeywordSet) Overlap {
	matched := jd.Intersect(resume).Len()
	total := jd.Len()

	score := 0.0
	if total > 0 {
		score = float64(matched) / float64(total)
	}

	return Overlap{
		Matched: matched,
		Total:   total,
		Score:   score,
		Missing: jd.Difference(resume),
	}
}
