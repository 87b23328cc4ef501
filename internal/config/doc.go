// Package config holds runtime configuration for kancparser.
//
// Settings are resolved in priority order: built-in defaults, then the
// optional .kancparser YAML file (current directory or XDG config dir),
// then environment variables (with .env support), then CLI flags. The
// resulting Config struct is validated once and injected into the
// components that need it.
package config
