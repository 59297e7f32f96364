// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citation-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the Crossref metadata fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MailTo is the contact email sent with every request for polite-pool
	// access. Optional but recommended by Crossref.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PlusToken is an optional Crossref Metadata Plus API token.
	PlusToken string `json:"plus_token,omitempty" yaml:"plus_token,omitempty"`

	// RequestsPerSecond caps the outgoing request rate (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the persistent metadata cache.
type CacheConfig struct {
	// Path is the SQLite database file (default "cache/metadata.db").
	Path string `json:"path" yaml:"path"`

	// TTL is how long an entry stays valid after its last read
	// (default 7 days). The TTL is sliding: a hit refreshes it.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// BatchConfig holds settings for the batch orchestrator.
type BatchConfig struct {
	// FetchWorkers is the phase-1 worker pool width (default 3).
	FetchWorkers int `json:"fetch_workers" yaml:"fetch_workers"`

	// RetryWorkers is the phase-2 worker pool width (default 2). The retry
	// pool is narrower to reduce contention against a struggling API.
	RetryWorkers int `json:"retry_workers" yaml:"retry_workers"`

	// TaskTimeout bounds each fetch task (default 30s). A timed-out task
	// counts as a failure and is eligible for the retry phase.
	TaskTimeout time.Duration `json:"task_timeout" yaml:"task_timeout"`
}

// PipelineConfig groups all stage configurations for a processing run.
type PipelineConfig struct {
	// Language selects localized user-visible strings ("en", "ru").
	Language string `json:"language" yaml:"language"`

	Fetch FetchConfig `json:"fetch" yaml:"fetch"`
	Cache CacheConfig `json:"cache" yaml:"cache"`
	Batch BatchConfig `json:"batch" yaml:"batch"`
}
