package services

import (
	"strings"
	"unicode/utf8"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 100
	// SectionOverview names the text that precedes the first header.
	SectionOverview = "overview"
)

// Chunk is a piece of a posting small enough to embed, tagged with the
// section it came from.
type Chunk struct {
	Section string
	Text    string
}

type Chunker interface {
	Chunk(text string) []Chunk
}

type sectionChunker struct {
	splitter *analysis.SectionSplitter
	maxSize  int
	overlap  int
}

// NewSectionChunker splits text by section header first and then packs each
// section's lines into chunks of at most maxSize runes.
func NewSectionChunker(splitter *analysis.SectionSplitter, maxSize, overlap int) Chunker {
	if maxSize <= 0 {
		maxSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 4
	}
	return &sectionChunker{splitter: splitter, maxSize: maxSize, overlap: overlap}
}

func (c *sectionChunker) Chunk(text string) []Chunk {
	var chunks []Chunk
	add := func(section, body string) {
		for _, piece := range c.pack(body) {
			chunks = append(chunks, Chunk{Section: section, Text: piece})
		}
	}

	add(SectionOverview, c.splitter.Preamble(text))
	for _, sec := range c.splitter.SplitAll(text) {
		add(sec.Name, sec.Text)
	}
	return chunks
}

// pack joins lines until the next one would overflow. Lines longer than the
// limit are cut into overlapping windows.
func (c *sectionChunker) pack(text string) []string {
	var (
		out     []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			out = append(out, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n == 0 {
			continue
		}

		if n > c.maxSize {
			flush()
			out = append(out, c.windows(line)...)
			continue
		}

		if size > 0 && size+1+n > c.maxSize {
			flush()
		}
		if size > 0 {
			current.WriteByte('\n')
			size++
		}
		current.WriteString(line)
		size += n
	}
	flush()

	return out
}

func (c *sectionChunker) windows(line string) []string {
	runes := []rune(line)
	step := c.maxSize - c.overlap

	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + c.maxSize
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
