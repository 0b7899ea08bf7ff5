// Package router maps URL paths to quiz screens.
//
// Routes:
//   - /pergunta-<N>: question N (1-based)
//   - /resultado: the result screen
//
// Any other path is normalized to the first question on page load.
package router

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// ResultRoute is the path of the result screen
	ResultRoute = "/resultado"
	// FirstRoute is where unrecognized paths land
	FirstRoute = "/pergunta-1"

	questionMarker = "pergunta-"
	resultMarker   = "resultado"
)

var questionPattern = regexp.MustCompile(`pergunta-(\d+)`)

// QuestionRoute returns the path of the 1-based question number n.
func QuestionRoute(n int) string {
	return fmt.Sprintf("/pergunta-%d", n)
}

// CurrentQuestionIndex returns the 0-based question index encoded in path.
// Paths without the pattern, or with a number that does not parse, map to 0.
func CurrentQuestionIndex(path string) int {
	match := questionPattern.FindStringSubmatch(path)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n - 1
}

// NextRoute returns the route after the question at index, given total
// questions. Past the last question it is the result route.
func NextRoute(index, total int) string {
	next := index + 1
	if next >= total {
		return ResultRoute
	}
	return QuestionRoute(next + 1)
}

// IsResult reports whether path points at the result screen.
func IsResult(path string) bool {
	return strings.Contains(path, resultMarker)
}

// IsKnown reports whether path names a question or the result screen.
func IsKnown(path string) bool {
	return strings.Contains(path, questionMarker) || IsResult(path)
}

// Normalize maps unknown paths to the first question.
func Normalize(path string) string {
	if IsKnown(path) {
		return path
	}
	return FirstRoute
}
