// Package config loads, normalizes, and validates the summarizer TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/summarizer/config.toml, then a project-local summarizer.toml.
// Missing files fall back to Default(); path fields are tilde-expanded and
// made absolute during normalization. The LLM API key may be injected via
// the SUMMARIZER_LLM_API_KEY environment variable so the key never has to
// live on disk.
package config
