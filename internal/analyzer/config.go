package analyzer

import (
	"github.com/jingwhale/blockpy/internal/config"
	"github.com/jingwhale/blockpy/internal/diagnostics"
)

// ConfigFrom adapts a loaded config.Config into the Analyzer's own Config,
// resolving the disabled-issue name list against the closed Kind set.
// Unknown names are silently ignored rather than failing the run — a
// typo in blockpy.yaml should not stop analysis from happening at all.
func ConfigFrom(c *config.Config) Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}
	if c.MaxCallDepth > 0 {
		cfg.MaxCallDepth = c.MaxCallDepth
	}
	for _, name := range c.DisabledIssues {
		for _, kind := range diagnostics.AllKinds {
			if string(kind) == name {
				cfg.DisabledIssues[kind] = true
			}
		}
	}
	return cfg
}
