/*
Package monitoring provides metrics collection for the quiz widget backend.

# Overview

Prometheus metrics live on a per-instance registry so several servers (and
tests) can coexist in one process.

# Features

- HTTP request metrics (count, latency) labelled by route template
- Bridge message metrics by direction and message type
- Dropped message counts
- Host connection gauge
- Quiz loads, completions and score ratio
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordBridgeMessage("out", "quizCompleted")
*/
package monitoring
