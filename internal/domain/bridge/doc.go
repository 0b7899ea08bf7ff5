// Package bridge implements the message protocol between the quiz widget and
// its native host.
//
// Messages are flat JSON objects tagged by a "type" field. Outbound
// (widget → host): navigate, answerSelected, quizCompleted. Inbound
// (host → widget): loadQuiz, loadAnswers; other types decode to Unknown.
//
// Two transports exist and one is chosen at start-up:
//   - HostTransport: posts to the attached host connection (WebSocket)
//   - LocalTransport: web-preview fallback, logs each message
//
// Example Usage:
//
//	msg, err := bridge.Decode(`{"type":"loadAnswers","payload":[]}`)
//	err = transport.Send(bridge.Navigate{Route: "/resultado"})
package bridge
