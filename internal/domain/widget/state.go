package widget

import (
	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/quiz"
	"github.com/GriffinCanCode/quizbridge/internal/shared/id"
)

// State is the per-session quiz state: the question set, the answer map and
// whether completion has already been reported.
type State struct {
	SessionID      id.SessionID
	Quiz           quiz.Quiz
	Answers        quiz.Answers
	CompletionSent bool
}

// NewState starts a session for q
func NewState(q quiz.Quiz) *State {
	s := &State{}
	s.Reset(q)
	return s
}

// Reset replaces the quiz and starts a fresh session.
func (s *State) Reset(q quiz.Quiz) {
	s.SessionID = id.NewSessionID()
	s.Quiz = q
	s.Answers = make(quiz.Answers)
	s.CompletionSent = false
}

// Restore replaces the answer map with the complete entries and returns how
// many were kept.
func (s *State) Restore(entries []bridge.AnswerEntry) int {
	s.Answers = make(quiz.Answers, len(entries))
	for _, e := range entries {
		if !e.Complete() {
			continue
		}
		s.Answers[e.QuestionID] = e.OptionID
	}
	return len(s.Answers)
}

// MarkCompleted flips the completion flag and reports whether it was unset.
func (s *State) MarkCompleted() bool {
	if s.CompletionSent {
		return false
	}
	s.CompletionSent = true
	return true
}
