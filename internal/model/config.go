package model

import "time"

// Config is the full runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, MATCHPOINT_* environment
// variables, config file (~/.matchpoint/config.yaml), defaults.
type Config struct {
	Retrieval   RetrievalConfig   `yaml:"retrieval" json:"retrieval"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Server      ServerConfig      `yaml:"server" json:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// RetrievalConfig controls handbook chunking and lexical retrieval.
type RetrievalConfig struct {
	ChunkSize    int `yaml:"chunk_size" json:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap"`
	TopK         int `yaml:"top_k" json:"top_k"`
}

// CacheConfig controls caching of extracted handbook text.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
	Dir     string        `yaml:"dir" json:"dir"`
}

// LLMConfig configures the optional hosted-model recommendation synthesis.
// Provider empty means the deterministic composer is used.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"`
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	APIKey       string `yaml:"-" json:"-"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	BatchWorkers  int     `yaml:"batch_workers" json:"batch_workers"`
	LLMRatePerSec float64 `yaml:"llm_rate_per_sec" json:"llm_rate_per_sec"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
			Dir:     "",
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Server: ServerConfig{
			Addr:         ":8084",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:  4,
			LLMRatePerSec: 1,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
