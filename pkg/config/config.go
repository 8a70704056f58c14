// Package config holds the immutable per-invocation configuration for
// catp. Defaults are embedded, then merged with the user config file,
// a repo-local config file, and finally command-line flags. The merged
// value is passed explicitly through discovery, filtering and
// rendering; nothing reads configuration from global state.
package config

import (
	"time"
)

// Patterns holds the three default rule groups
type Patterns struct {
	// Include lists glob patterns for files worth snapshotting
	Include []string `koanf:"include"`

	// ExcludeDirs lists directory names pruned before descent
	ExcludeDirs []string `koanf:"exclude_dirs"`

	// ExcludeFiles lists file patterns denied unless re-enabled with --allow
	ExcludeFiles []string `koanf:"exclude_files"`
}

// Config is the merged configuration for one invocation
type Config struct {
	// MaxKB is the per-file size cap in kilobytes
	MaxKB int `koanf:"max_kb"`

	// Depth is the nested-repository recursion depth (-1 = unlimited,
	// 0 = root repository only)
	Depth int `koanf:"depth"`

	// TruncateNotebooks controls stripping of notebook cell outputs
	TruncateNotebooks bool `koanf:"truncate_ipynb"`

	// ClipboardTimeoutSeconds bounds clipboard delivery
	ClipboardTimeoutSeconds float64 `koanf:"clipboard_timeout"`

	Patterns Patterns `koanf:"patterns"`
}

// ClipboardTimeout returns the clipboard bound as a duration
func (c *Config) ClipboardTimeout() time.Duration {
	return time.Duration(c.ClipboardTimeoutSeconds * float64(time.Second))
}
