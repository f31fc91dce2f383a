package app

import (
	"github.com/raysh454/kensa/internal/fetcher"
	"github.com/raysh454/kensa/internal/scan"
	"github.com/raysh454/kensa/internal/webclient"
)

// Config contains the runtime configuration for the screen. Defaults encode
// the scan contract (per-fetch and overall deadlines, redirect cap, pacing);
// the CLI may override the listen address and user agent.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server (the CLI's
	// one-shot scan runs the orchestrator in-process and does not need it).
	ListenAddr string

	// WebClient configuration
	WebClientCfg webclient.Config

	// Fetcher Configuration
	FetcherCfg fetcher.Config

	// Scan orchestration configuration
	ScanCfg scan.Config
}

// DefaultConfig returns a Config populated with the contract defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:   ":8080",
		WebClientCfg: webclient.DefaultConfig(),
		FetcherCfg:   fetcher.DefaultConfig(),
		ScanCfg:      scan.DefaultConfig(),
	}
}
