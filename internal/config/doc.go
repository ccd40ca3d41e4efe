// Package config defines configuration for the avatarfetch CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (AVATARFETCH_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over defaults. The
// configuration belongs to the CLI host adapter only: the core packages
// take plain option values and never read files or the environment.
package config
