// Package config provides 12-factor configuration management for the quiz
// widget backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Bridge: transport mode and allowed WebSocket origins
//   - Quiz: initial quiz source and fetch settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Environment Variables:
//   - PORT, HOST
//   - BRIDGE_MODE, BRIDGE_ALLOWED_ORIGINS
//   - QUIZ_SOURCE, QUIZ_FETCH_TIMEOUT, QUIZ_FETCH_RETRIES
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
