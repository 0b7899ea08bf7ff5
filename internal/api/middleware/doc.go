// Package middleware provides HTTP middleware for the widget server.
//
// Middleware:
//   - CORS: cross-origin access for hosts embedding the preview
//   - RateLimit: per-IP token bucket (golang.org/x/time/rate)
//   - RequestID: X-Request-ID propagation and request logging
package middleware
