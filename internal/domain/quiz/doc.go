// Package quiz defines quiz definitions, answer sets and grading.
//
// A Quiz is an ordered list of questions; each question has options, at most
// one of which is marked correct. Definitions are validated whenever they
// enter the process, whether from the embedded sample, a file (JSON, YAML,
// TOML) or a remote URL.
//
// Example Usage:
//
//	q, err := quiz.Load(ctx, os.Getenv("QUIZ_SOURCE"), quiz.DefaultSourceOptions())
//	result := quiz.Grade(q, quiz.Answers{"q1": "a"})
package quiz
