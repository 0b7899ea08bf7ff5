// Package main runs the quiz widget server.
//
// The widget shows one multiple-choice question per route (/pergunta-N),
// then a result screen (/resultado). It reports selections, navigation and
// the final score to a native host over a WebSocket bridge, or logs them in
// local web preview mode.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Web preview with the built-in sample quiz
//	./server -port 8000
//
//	# Driven by a native host, quiz from a file
//	./server -mode host -quiz ./quizzes/capitals.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev -log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
