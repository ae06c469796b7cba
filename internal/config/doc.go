// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, config file, environment variables, flags).
// It provides type-safe access to the settings needed by the Gemini client,
// the quiz flow and the logger while keeping configuration details separate
// from the rest of the application.
package config
