package model

import "time"

// Config holds all veridoc configuration, loadable from YAML and
// overridable via flags/environment. Tuning constants for the engine live
// here as named values; only their relative ordering carries meaning.
type Config struct {
	Extract     ExtractConfig     `yaml:"extract"`
	Bind        BindConfig        `yaml:"bind"`
	Lint        LintConfig        `yaml:"lint"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ExtractConfig tunes claim extraction confidence.
type ExtractConfig struct {
	// CitedBonus is added to the per-category base confidence when the
	// line carries at least one source reference.
	CitedBonus float64 `yaml:"cited_bonus"`
}

// BindConfig tunes evidence binding.
type BindConfig struct {
	MinScore       float64 `yaml:"min_score"`        // Threshold below which a claim stays unbound
	SourceRefBonus float64 `yaml:"source_ref_bonus"` // Bonus when the chunk's source is cited by the claim
}

// LintConfig tunes the lint rules.
type LintConfig struct {
	MaxSourceAgeYears int `yaml:"max_source_age_years"` // Sources strictly older are flagged
	MinSectionChars   int `yaml:"min_section_chars"`    // Section bodies shorter are incomplete
}

// EmbeddingConfig configures the optional embedding client used by the
// semantic binding strategy.
type EmbeddingConfig struct {
	Provider          string  `yaml:"provider"` // "" disables embeddings
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"-"` // From environment only, never serialized
	BaseURL           string  `yaml:"base_url,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// CacheConfig configures the report cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds parallelism.
type ConcurrencyConfig struct {
	BindWorkers  int `yaml:"bind_workers"`  // Concurrent claims during binding
	BatchWorkers int `yaml:"batch_workers"` // Concurrent drafts in batch mode
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			CitedBonus: 0.10,
		},
		Bind: BindConfig{
			MinScore:       0.25,
			SourceRefBonus: 0.20,
		},
		Lint: LintConfig{
			MaxSourceAgeYears: 5,
			MinSectionChars:   40,
		},
		Embedding: EmbeddingConfig{
			Model:             "text-embedding-3-small",
			RequestsPerSecond: 2,
			TimeoutSeconds:    30,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BindWorkers:  8,
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
