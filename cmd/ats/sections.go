package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/config"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the recognised sections of a document",
	RunE:  runSections,
}

var (
	sectionsIn  string
	sectionsAll bool
)

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsIn, "in", "i", "", "Path to the document (.txt, .pdf, .docx, .html)")
	sectionsCmd.Flags().BoolVar(&sectionsAll, "all", false, "Print repeated headers separately instead of keeping the last one")

	sectionsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	text, err := readDocument(services.NewTextExtractor(), sectionsIn)
	if err != nil {
		return fmt.Errorf("could not extract text: %w", err)
	}

	splitter := analysis.NewSectionSplitter(config.Load().Analysis.SectionHeaders)
	sections := splitter.SplitAll(text)
	if len(sections) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No sections found. Recognised headers: %s\n", strings.Join(splitter.Headers(), ", "))
		return nil
	}
	if !sectionsAll {
		sections = lastOccurrences(sections)
	}

	writeSections(cmd.OutOrStdout(), sections)
	return nil
}

// lastOccurrences keeps the last occurrence of each repeated header while
// preserving document order.
func lastOccurrences(sections []analysis.Section) []analysis.Section {
	seen := make(map[string]bool, len(sections))
	var out []analysis.Section
	for i := len(sections) - 1; i >= 0; i-- {
		if seen[sections[i].Name] {
			continue
		}
		seen[sections[i].Name] = true
		out = append(out, sections[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func writeSections(w io.Writer, sections []analysis.Section) {
	if len(sections) == 0 {
		fmt.Fprintln(w, "No sections found.")
		return
	}
	for i, sec := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", sec.Name)
		if sec.Text == "" {
			fmt.Fprintln(w, "(empty)")
			continue
		}
		fmt.Fprintln(w, sec.Text)
	}
}
