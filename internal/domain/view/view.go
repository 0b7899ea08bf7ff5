// Package view holds the declarative description of what the widget shows
// and binds it to HTML for the web preview.
package view

import "sync"

// ScreenKind identifies which of the two screens a view describes.
type ScreenKind string

const (
	ScreenQuestion ScreenKind = "question"
	ScreenResult   ScreenKind = "result"
)

// SelectAction is what activating an option does.
type SelectAction struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// OptionView is one selectable option.
type OptionView struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Selected bool         `json:"selected"`
	Action   SelectAction `json:"action"`
}

// QuestionView is the question area.
type QuestionView struct {
	ID      string       `json:"id"`
	Number  int          `json:"number"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

// ResultView is the result area.
type ResultView struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Summary string `json:"summary"`
}

// View is a full screen description.
type View struct {
	Screen        ScreenKind    `json:"screen"`
	Route         string        `json:"route"`
	Title         string        `json:"title"`
	Question      *QuestionView `json:"question,omitempty"`
	Result        *ResultView   `json:"result,omitempty"`
	NextVisible   bool          `json:"nextVisible"`
	ResultVisible bool          `json:"resultVisible"`
}

// Select marks optionID as the selected option of questionID, leaving the
// option list untouched when the view shows a different question.
func (v *View) Select(questionID, optionID string) bool {
	if v.Question == nil || v.Question.ID != questionID {
		return false
	}
	for i := range v.Question.Options {
		v.Question.Options[i].Selected = v.Question.Options[i].ID == optionID
	}
	return true
}

// Clone returns a deep copy.
func (v View) Clone() View {
	if v.Question != nil {
		q := *v.Question
		q.Options = append([]OptionView(nil), v.Question.Options...)
		v.Question = &q
	}
	if v.Result != nil {
		r := *v.Result
		v.Result = &r
	}
	return v
}

// Display receives every rendered view.
type Display interface {
	Show(v View)
}

// Screen keeps the most recently shown view.
type Screen struct {
	mu      sync.RWMutex
	current *View
}

// NewScreen creates an empty screen
func NewScreen() *Screen {
	return &Screen{}
}

// Show stores a copy of v.
func (s *Screen) Show(v View) {
	c := v.Clone()
	s.mu.Lock()
	s.current = &c
	s.mu.Unlock()
}

// Current returns the last shown view, if any.
func (s *Screen) Current() (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return View{}, false
	}
	return s.current.Clone(), true
}
