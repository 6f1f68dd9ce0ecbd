package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/config"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

const defaultPostingsDir = "./reference_postings"

func main() {
	log.Println("🚀 Starting job posting ingestion...")

	cfg := config.Load()
	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required to embed postings")
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewPostingIndex(cfg.Qdrant)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := index.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	dir := defaultPostingsDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	extractor := services.NewTextExtractor()
	chunker := services.NewSectionChunker(analysis.NewSectionSplitter(cfg.Analysis.SectionHeaders), 1000, 100)

	paths, err := postingFiles(dir, extractor)
	if err != nil {
		log.Fatalf("❌ Failed to list %s: %v", dir, err)
	}
	if len(paths) == 0 {
		log.Fatalf("❌ No supported posting files in %s", dir)
	}

	successCount := 0
	failCount := 0

	for _, path := range paths {
		source := filepath.Base(path)
		log.Printf("\n📄 Processing: %s", source)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		text, err := extractor.ExtractText(source, data)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len(text))

		chunks := chunker.Chunk(text)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		if err := index.DeleteSource(ctx, source); err != nil {
			log.Printf("   ❌ Failed to remove previous chunks: %v", err)
			failCount++
			continue
		}

		title := postingTitle(text, source)
		log.Printf("   🔄 Embedding with %s...", geminiService.Model())
		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk.Text)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			err = index.UpsertChunk(ctx, services.PostingChunk{
				Title:   title,
				Source:  source,
				Section: chunk.Section,
				Text:    chunk.Text,
			}, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		if stored == 0 {
			log.Printf("   ❌ No chunks stored for %s", source)
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %q", title)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d postings", successCount)
	log.Printf("   ❌ Failed: %d postings", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some postings failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All postings ingested successfully!")
}

// postingFiles lists the files in dir the extractor can read, sorted by name.
func postingFiles(dir string, extractor services.TextExtractor) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !extractor.Supports(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// postingTitle uses the first non-blank line of the posting, falling back to
// the file name without its extension.
func postingTitle(text, source string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			if r := []rune(line); len(r) > 120 {
				line = string(r[:120])
			}
			return line
		}
	}
	return strings.TrimSuffix(source, filepath.Ext(source))
}
