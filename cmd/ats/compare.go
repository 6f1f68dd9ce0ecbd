package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/config"
	"alfredoptarigan/resume-ats-checker/internal/nlp"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a resume against a job description",
	Long:  "Extract keywords from both documents, report the match score, the missing keywords and similar words already in the resume. Optionally adds an embedding based similarity score.",
	RunE:  runCompare,
}

var (
	resumeFile     string
	jdFile         string
	withSemantic   bool
	cutoff         float64
	maxSuggestions int
	asJSON         bool
)

func init() {
	compareCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume (.txt, .pdf, .docx, .html)")
	compareCmd.Flags().StringVarP(&jdFile, "jd", "j", "", "Path to the job description (.txt, .pdf, .docx, .html)")
	compareCmd.Flags().BoolVar(&withSemantic, "semantic", false, "Also compute semantic similarity (requires GEMINI_API_KEY)")
	compareCmd.Flags().Float64Var(&cutoff, "cutoff", analysis.DefaultSuggestionCutoff, "Minimum similarity for suggestions, in (0,1]")
	compareCmd.Flags().IntVar(&maxSuggestions, "max-suggestions", analysis.DefaultMaxSuggestions, "Maximum suggestions per missing keyword")
	compareCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")

	compareCmd.MarkFlagRequired("resume")
	compareCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if cutoff <= 0 || cutoff > 1 {
		return fmt.Errorf("--cutoff must be above 0 and at most 1, got %v", cutoff)
	}
	if maxSuggestions < 1 {
		return fmt.Errorf("--max-suggestions must be at least 1, got %d", maxSuggestions)
	}

	extractor := services.NewTextExtractor()
	resumeText, err := readDocument(extractor, resumeFile)
	if err != nil {
		return fmt.Errorf("could not extract text from the resume file: %w", err)
	}
	jdText, err := readDocument(extractor, jdFile)
	if err != nil {
		return fmt.Errorf("could not extract text from the job description file: %w", err)
	}

	cfg := config.Load()

	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		return err
	}
	analyzer := analysis.NewAnalyzer(normalizer,
		analysis.WithSectionHeaders(cfg.Analysis.SectionHeaders),
		analysis.WithSkillKeywords(cfg.Analysis.SkillKeywords),
		analysis.WithSuggestOptions(analysis.SuggestOptions{MaxPerKeyword: maxSuggestions, Cutoff: cutoff}),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var semantic analysis.SemanticSimilarity
	if withSemantic {
		gemini, err := services.NewGeminiService(ctx, cfg.Gemini)
		if err != nil {
			return fmt.Errorf("semantic similarity unavailable: %w", err)
		}
		semantic = services.NewSemanticSimilarity(gemini)
	}

	matcher := services.NewMatcherService(analyzer, semantic, cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryInitialDelay)
	report, err := matcher.Compare(ctx, resumeText, jdText, withSemantic)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	writeReport(cmd.OutOrStdout(), report)
	return nil
}

func readDocument(extractor services.TextExtractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extractor.ExtractText(filepath.Base(path), data)
}

// writeReport prints a report in the plain text layout of the checker.
func writeReport(w io.Writer, r *analysis.Report) {
	fmt.Fprintf(w, "Match score: %.1f%%\n", r.Score*100)
	fmt.Fprintf(w, "Missing keywords: %s\n", strings.Join(r.MissingKeywords, ", "))

	if len(r.MissingKeywords) > 0 {
		fmt.Fprintln(w, "\nSuggestions to improve your resume:")
		fmt.Fprintln(w, "- Add these missing keywords/skills from the job description:")
		for _, kw := range r.MissingKeywords {
			fmt.Fprintf(w, "  - %s\n", kw)
		}

		if len(r.Suggestions) > 0 {
			fmt.Fprintln(w, "\nYou have similar words in your resume for some missing keywords:")
			for _, kw := range r.Suggestions.Keys() {
				fmt.Fprintf(w, "  - %s: similar in your resume -> %s\n", kw, strings.Join(r.Suggestions[kw], ", "))
			}
		}
	}

	if r.SemanticSimilarity != nil {
		fmt.Fprintf(w, "\nSemantic similarity score: %.2f\n", *r.SemanticSimilarity)
	}
}
