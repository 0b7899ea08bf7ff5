package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/quizbridge/internal/domain/quiz"
)

// ErrMalformed is returned when a host message cannot be decoded.
var ErrMalformed = errors.New("malformed host message")

// Kind tags a bridge message on the wire.
type Kind string

const (
	// Outbound kinds (widget → host)
	KindNavigate       Kind = "navigate"
	KindAnswerSelected Kind = "answerSelected"
	KindQuizCompleted  Kind = "quizCompleted"

	// Inbound kinds (host → widget)
	KindLoadQuiz    Kind = "loadQuiz"
	KindLoadAnswers Kind = "loadAnswers"
)

// Outbound is a message sent to the host. The set of implementations is closed.
type Outbound interface {
	Kind() Kind
	outbound()
}

// Navigate asks the host to move to route.
type Navigate struct {
	Route string
}

// AnswerSelected reports a user's choice.
type AnswerSelected struct {
	QuestionID string
	OptionID   string
	Route      string
}

// QuizCompleted reports the final score of a session.
type QuizCompleted struct {
	Score int
	Total int
}

func (Navigate) Kind() Kind       { return KindNavigate }
func (AnswerSelected) Kind() Kind { return KindAnswerSelected }
func (QuizCompleted) Kind() Kind  { return KindQuizCompleted }

func (Navigate) outbound()       {}
func (AnswerSelected) outbound() {}
func (QuizCompleted) outbound()  {}

// Inbound is a message received from the host. The set of implementations is closed.
type Inbound interface {
	Kind() Kind
	inbound()
}

// LoadQuiz replaces the active quiz.
type LoadQuiz struct {
	Quiz quiz.Quiz
}

// LoadAnswers restores previously chosen answers.
type LoadAnswers struct {
	Answers []AnswerEntry
}

// Unknown carries any message whose type the widget does not handle.
type Unknown struct {
	Type string
	Raw  []byte
}

func (LoadQuiz) Kind() Kind    { return KindLoadQuiz }
func (LoadAnswers) Kind() Kind { return KindLoadAnswers }
func (u Unknown) Kind() Kind   { return Kind(u.Type) }

func (LoadQuiz) inbound()    {}
func (LoadAnswers) inbound() {}
func (Unknown) inbound()     {}

// AnswerEntry is one restored answer. Empty fields mean the field was missing.
type AnswerEntry struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// Complete reports whether both IDs are present.
func (e AnswerEntry) Complete() bool {
	return e.QuestionID != "" && e.OptionID != ""
}

// Envelope is the wire form of an inbound message.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type navigateWire struct {
	Type  Kind   `json:"type"`
	Route string `json:"route"`
}

type answerSelectedWire struct {
	Type       Kind   `json:"type"`
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
	Route      string `json:"route"`
}

type quizCompletedWire struct {
	Type  Kind `json:"type"`
	Score int  `json:"score"`
	Total int  `json:"total"`
}

// Encode serializes an outbound message with its type tag.
func Encode(msg Outbound) ([]byte, error) {
	switch m := msg.(type) {
	case Navigate:
		return sonic.Marshal(navigateWire{Type: KindNavigate, Route: m.Route})
	case AnswerSelected:
		return sonic.Marshal(answerSelectedWire{
			Type:       KindAnswerSelected,
			QuestionID: m.QuestionID,
			OptionID:   m.OptionID,
			Route:      m.Route,
		})
	case QuizCompleted:
		return sonic.Marshal(quizCompletedWire{Type: KindQuizCompleted, Score: m.Score, Total: m.Total})
	default:
		return nil, fmt.Errorf("unsupported outbound message %T", msg)
	}
}

// Decode turns a host message into its variant. It accepts serialized input
// (string, []byte) or already structured input (Envelope, maps, structs).
func Decode(message interface{}) (Inbound, error) {
	env, raw, err := envelopeOf(message)
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case KindLoadQuiz:
		if len(env.Payload) == 0 || string(env.Payload) == "null" {
			return nil, fmt.Errorf("%w: loadQuiz without payload", ErrMalformed)
		}
		var q quiz.Quiz
		if err := sonic.Unmarshal(env.Payload, &q); err != nil {
			return nil, fmt.Errorf("%w: loadQuiz payload: %v", ErrMalformed, err)
		}
		return LoadQuiz{Quiz: q}, nil

	case KindLoadAnswers:
		if len(env.Payload) == 0 || string(env.Payload) == "null" {
			return nil, fmt.Errorf("%w: loadAnswers without payload", ErrMalformed)
		}
		var entries []AnswerEntry
		if err := sonic.Unmarshal(env.Payload, &entries); err != nil {
			return nil, fmt.Errorf("%w: loadAnswers payload: %v", ErrMalformed, err)
		}
		return LoadAnswers{Answers: entries}, nil

	default:
		return Unknown{Type: string(env.Type), Raw: raw}, nil
	}
}

func envelopeOf(message interface{}) (Envelope, []byte, error) {
	var raw []byte
	switch m := message.(type) {
	case nil:
		return Envelope{}, nil, fmt.Errorf("%w: empty message", ErrMalformed)
	case Envelope:
		return m, nil, nil
	case *Envelope:
		if m == nil {
			return Envelope{}, nil, fmt.Errorf("%w: empty message", ErrMalformed)
		}
		return *m, nil, nil
	case string:
		raw = []byte(m)
	case []byte:
		raw = m
	case json.RawMessage:
		raw = m
	default:
		data, err := sonic.Marshal(m)
		if err != nil {
			return Envelope{}, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = data
	}

	var env Envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return Envelope{}, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return env, raw, nil
}
