package quiz

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidQuiz is returned when a quiz definition breaks its structural rules.
var ErrInvalidQuiz = errors.New("invalid quiz")

// Option is one selectable answer of a question.
type Option struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Text    string `json:"text" yaml:"text" toml:"text"`
	Correct bool   `json:"correct,omitempty" yaml:"correct,omitempty" toml:"correct,omitempty"`
}

// Question is a prompt with an ordered list of options.
type Question struct {
	ID      string   `json:"id" yaml:"id" toml:"id"`
	Text    string   `json:"text" yaml:"text" toml:"text"`
	Options []Option `json:"options" yaml:"options" toml:"options"`
}

// Quiz is an ordered question set. Question order is the navigation order.
type Quiz struct {
	Title     string     `json:"title" yaml:"title" toml:"title"`
	Questions []Question `json:"questions" yaml:"questions" toml:"questions"`
}

// Len returns the number of questions
func (q Quiz) Len() int {
	return len(q.Questions)
}

// Question returns the question at a 0-based index.
func (q Quiz) Question(index int) (Question, bool) {
	if index < 0 || index >= len(q.Questions) {
		return Question{}, false
	}
	return q.Questions[index], true
}

// FindQuestion looks a question up by ID.
func (q Quiz) FindQuestion(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// Option looks an option up by ID.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the first option marked correct.
func (q Question) CorrectOption() (Option, bool) {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt, true
		}
	}
	return Option{}, false
}

// Validate checks ID presence and uniqueness and that no question has more
// than one correct option.
func (q Quiz) Validate() error {
	seen := make(map[string]struct{}, len(q.Questions))
	for i, question := range q.Questions {
		if question.ID == "" {
			return fmt.Errorf("%w: question %d has an empty id", ErrInvalidQuiz, i+1)
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidQuiz, question.ID)
		}
		seen[question.ID] = struct{}{}

		options := make(map[string]struct{}, len(question.Options))
		correct := 0
		for j, opt := range question.Options {
			if opt.ID == "" {
				return fmt.Errorf("%w: question %q option %d has an empty id", ErrInvalidQuiz, question.ID, j+1)
			}
			if _, dup := options[opt.ID]; dup {
				return fmt.Errorf("%w: question %q has duplicate option id %q", ErrInvalidQuiz, question.ID, opt.ID)
			}
			options[opt.ID] = struct{}{}
			if opt.Correct {
				correct++
			}
		}
		if correct > 1 {
			return fmt.Errorf("%w: question %q has %d correct options", ErrInvalidQuiz, question.ID, correct)
		}
	}
	return nil
}

// Answers maps a question ID to the chosen option ID.
type Answers map[string]string

// Entry is one question/option pair of an answer set.
type Entry struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// Entries returns the answers ordered by question ID.
func (a Answers) Entries() []Entry {
	entries := make([]Entry, 0, len(a))
	for qid, oid := range a {
		entries = append(entries, Entry{QuestionID: qid, OptionID: oid})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].QuestionID < entries[j].QuestionID
	})
	return entries
}
