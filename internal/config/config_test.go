package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUGGESTION_CUTOFF", "")
	t.Setenv("SECTION_HEADERS", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg := Load()

	assert.Equal(t, analysis.DefaultSuggestionCutoff, cfg.Analysis.SuggestionCutoff)
	assert.Equal(t, analysis.DefaultMaxSuggestions, cfg.Analysis.MaxSuggestions)
	assert.Equal(t, analysis.DefaultSectionHeaders, cfg.Analysis.SectionHeaders)
	assert.Equal(t, StorageBackendLocal, cfg.Storage.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Storage.UploadTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUGGESTION_CUTOFF", "0.8")
	t.Setenv("MAX_SUGGESTIONS", "3")
	t.Setenv("SECTION_HEADERS", "skills, languages ,,")
	t.Setenv("UPLOAD_TTL", "not-a-duration")
	t.Setenv("STORAGE_BACKEND", "R2")

	cfg := Load()

	assert.Equal(t, 0.8, cfg.Analysis.SuggestionCutoff)
	assert.Equal(t, 3, cfg.Analysis.MaxSuggestions)
	assert.Equal(t, []string{"skills", "languages"}, cfg.Analysis.SectionHeaders)
	assert.Equal(t, 30*time.Minute, cfg.Storage.UploadTTL)
	assert.Equal(t, StorageBackendR2, cfg.Storage.Backend)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Gemini:   GeminiConfig{RequestsPerSecond: 5},
			Storage:  StorageConfig{Backend: StorageBackendLocal},
			Analysis: AnalysisConfig{SuggestionCutoff: 0.7, MaxSuggestions: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "cutoff above one", mutate: func(c *Config) { c.Analysis.SuggestionCutoff = 1.5 }, wantErr: "SUGGESTION_CUTOFF"},
		{name: "negative cutoff", mutate: func(c *Config) { c.Analysis.SuggestionCutoff = -0.1 }, wantErr: "SUGGESTION_CUTOFF"},
		{name: "zero cutoff", mutate: func(c *Config) { c.Analysis.SuggestionCutoff = 0 }, wantErr: "SUGGESTION_CUTOFF"},
		{name: "cutoff of one", mutate: func(c *Config) { c.Analysis.SuggestionCutoff = 1 }},
		{name: "zero suggestions", mutate: func(c *Config) { c.Analysis.MaxSuggestions = 0 }, wantErr: "MAX_SUGGESTIONS"},
		{name: "r2 without credentials", mutate: func(c *Config) { c.Storage.Backend = StorageBackendR2 }, wantErr: "R2_ACCOUNT_ID"},
		{
			name: "r2 with credentials",
			mutate: func(c *Config) {
				c.Storage.Backend = StorageBackendR2
				c.R2 = R2Config{AccountID: "acc", Bucket: "b", AccessKey: "k", SecretKey: "s"}
			},
		},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "ftp" }, wantErr: "unknown STORAGE_BACKEND"},
		{name: "zero rate", mutate: func(c *Config) { c.Gemini.RequestsPerSecond = 0 }, wantErr: "GEMINI_REQUESTS_PER_SECOND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPoolSize(t *testing.T) {
	cfg := &Config{Worker: WorkerConfig{Concurrency: 3}}
	assert.Equal(t, 7, poolSize(cfg))

	cfg.Database.MaxOpenConns = 20
	assert.Equal(t, 20, poolSize(cfg))
}
