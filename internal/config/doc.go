// Package config provides textranger's layered configuration.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← TEXTRANGER_*
//	├─────────────────────────────┤
//	│  3. .env File               │
//	├─────────────────────────────┤
//	│  2. Config File             │  ← textranger.toml (with @include)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - layer: Layer storage and priority merging
//   - loader: TOML, .env and environment variable loading
//
// # Usage
//
//	cfg := config.New(config.WithConfigFile("textranger.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	diff := cfg.Diff()
//
// Section accessors return snapshots. Settings with the wrong type fall
// back to their defaults and are reported by Errors.
package config
