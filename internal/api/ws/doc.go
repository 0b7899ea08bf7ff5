// Package ws carries the native bridge over a WebSocket.
//
// The host connects to GET /bridge. While connected, every frame it sends is
// handed to the widget as one host message, and every message the widget
// sends to its host is written back as one text frame. A newer connection
// replaces the older one as the attached host.
//
// Message Types (Host → Widget):
//   - loadQuiz: replace the quiz
//   - loadAnswers: restore saved answers
//
// Message Types (Widget → Host):
//   - navigate: route the host should load
//   - answerSelected: an option was chosen
//   - quizCompleted: final score, once per session
//
// Example Usage:
//
//	handler := ws.NewHandler(w, host, []string{"*"}, logger)
//	router.GET("/bridge", handler.HandleConnection)
package ws
