package widget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/quiz"
	"github.com/GriffinCanCode/quizbridge/internal/domain/router"
	"github.com/GriffinCanCode/quizbridge/internal/domain/view"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/quizbridge/internal/shared/id"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
)

const (
	directionIn  = "in"
	directionOut = "out"

	// maxHistory bounds the route history kept for a long-running widget.
	maxHistory = 64
)

// Widget is the quiz state machine. It owns the session state, renders the
// question or result screen for the current location and talks to the host
// through a transport. Every exported method is serialized.
type Widget struct {
	mu        sync.Mutex
	state     *State
	transport bridge.Transport
	display   view.Display
	logger    *zap.Logger
	metrics   *monitoring.Metrics

	location       string
	history        []string
	current        *view.View
	ready          bool // a page load has happened
	pendingRestore bool // loadAnswers arrived before the first page load
}

// New creates a widget showing q. Nothing is rendered until a page load or a
// host message asks for it.
func New(q quiz.Quiz, transport bridge.Transport, display view.Display, logger *zap.Logger) *Widget {
	return &Widget{
		state:     NewState(q),
		transport: transport,
		display:   display,
		logger:    logger,
	}
}

// WithMetrics adds metrics tracking to the widget
func (w *Widget) WithMetrics(metrics *monitoring.Metrics) *Widget {
	w.metrics = metrics
	return w
}

// Open handles a page load of path. Unknown paths are replaced by the first
// question. Returns the view shown once the load is handled.
func (w *Widget) Open(path string) view.View {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ready = true
	normalized := router.Normalize(path)
	w.location = normalized
	w.record(normalized)

	if normalized != path {
		w.logger.Debug("Normalized initial route", zap.String("from", path), zap.String("to", normalized))
		w.renderQuiz()
	} else {
		w.renderForLocation()
	}

	if w.pendingRestore {
		w.pendingRestore = false
		w.renderForLocation()
	}

	return w.current.Clone()
}

// OnNativeMessage dispatches one host message. Serialized and structured
// input are both accepted. Failures are logged, never returned.
func (w *Widget) OnNativeMessage(message interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	msg, err := bridge.Decode(message)
	if err != nil {
		w.logger.Error("Failed to handle host message", zap.Error(err))
		w.recordFailure(directionIn, "malformed")
		return
	}
	w.recordMessage(directionIn, string(msg.Kind()))

	switch m := msg.(type) {
	case bridge.LoadQuiz:
		w.loadQuiz(m.Quiz)
	case bridge.LoadAnswers:
		w.loadAnswers(m.Answers)
	case bridge.Unknown:
		w.logger.Info("Ignoring host message", zap.String("type", m.Type), zap.ByteString("raw", m.Raw))
	}
}

// SelectOption records the choice of optionID for questionID, updates the
// selected state of that question's options and reports it to the host.
func (w *Widget) SelectOption(questionID, optionID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	question, ok := w.state.Quiz.FindQuestion(questionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if _, ok := question.Option(optionID); !ok {
		return fmt.Errorf("%w: %q in question %q", ErrUnknownOption, optionID, questionID)
	}

	w.state.Answers[questionID] = optionID

	if w.current != nil && w.current.Select(questionID, optionID) {
		w.display.Show(*w.current)
	}

	w.send(bridge.AnswerSelected{
		QuestionID: questionID,
		OptionID:   optionID,
		Route:      w.location,
	})
	return nil
}

// NavigateToNext moves past the current question, to the result screen after
// the last one. The host is always told; without a host-driven transport the
// widget also updates its own history and renders. Returns the target route.
func (w *Widget) NavigateToNext() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	index := router.CurrentQuestionIndex(w.location)
	route := router.NextRoute(index, w.state.Quiz.Len())

	w.send(bridge.Navigate{Route: route})

	if !w.transport.HostDriven() {
		w.location = route
		w.record(route)
		if route == router.ResultRoute {
			w.renderResult()
		} else {
			w.renderQuiz()
		}
	}
	return route
}

// RenderQuiz shows the question for the current location.
func (w *Widget) RenderQuiz() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.renderQuiz()
}

// RenderResult shows the result screen.
func (w *Widget) RenderResult() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.renderResult()
}

// Grade scores the current answers.
func (w *Widget) Grade() quiz.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return quiz.Grade(w.state.Quiz, w.state.Answers)
}

// Location returns the current route
func (w *Widget) Location() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.location
}

// History returns the most recent distinct routes loaded or pushed, oldest first
func (w *Widget) History() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.history...)
}

// HostDriven reports whether the host performs navigation
func (w *Widget) HostDriven() bool {
	return w.transport.HostDriven()
}

// Snapshot is a read-only copy of the widget state.
type Snapshot struct {
	SessionID id.SessionID `json:"sessionId"`
	StartedAt time.Time    `json:"startedAt"`
	Title     string       `json:"title"`
	Location  string       `json:"location"`
	Answers   []quiz.Entry `json:"answers"`
	Completed bool         `json:"completed"`
	View      *view.View   `json:"view,omitempty"`
}

// Snapshot returns the current state
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		SessionID: w.state.SessionID,
		Title:     w.state.Quiz.Title,
		Location:  w.location,
		Answers:   w.state.Answers.Entries(),
		Completed: w.state.CompletionSent,
	}
	if started, err := id.Timestamp(w.state.SessionID.String()); err == nil {
		snap.StartedAt = started
	}
	if w.current != nil {
		v := w.current.Clone()
		snap.View = &v
	}
	return snap
}

func (w *Widget) loadQuiz(q quiz.Quiz) {
	if err := q.Validate(); err != nil {
		w.logger.Error("Rejected quiz from host", zap.Error(err))
		w.recordFailure(directionIn, string(bridge.KindLoadQuiz))
		return
	}

	w.state.Reset(q)
	if w.metrics != nil {
		w.metrics.IncQuizzesLoaded()
	}
	w.logger.Info("Quiz loaded",
		zap.String("session_id", w.state.SessionID.String()),
		zap.String("title", q.Title),
		zap.Int("questions", q.Len()),
	)

	w.renderQuiz()
}

func (w *Widget) loadAnswers(entries []bridge.AnswerEntry) {
	restored := w.state.Restore(entries)
	w.logger.Info("Answers restored from host",
		zap.String("session_id", w.state.SessionID.String()),
		zap.Int("received", len(entries)),
		zap.Int("restored", restored),
		zap.Any("answers", w.state.Answers.Entries()),
	)

	if !w.ready {
		w.pendingRestore = true
		return
	}
	w.renderForLocation()
}

// record appends route to the history unless it repeats the last entry.
func (w *Widget) record(route string) {
	if n := len(w.history); n > 0 && w.history[n-1] == route {
		return
	}
	w.history = append(w.history, route)
	if len(w.history) > maxHistory {
		w.history = append([]string(nil), w.history[len(w.history)-maxHistory:]...)
	}
}

func (w *Widget) renderForLocation() {
	if router.IsResult(w.location) {
		w.renderResult()
	} else {
		w.renderQuiz()
	}
}

func (w *Widget) renderQuiz() {
	// Back on the question screen: completion has not been declared yet.
	w.state.CompletionSent = false

	index := router.CurrentQuestionIndex(w.location)
	question, ok := w.state.Quiz.Question(index)
	if !ok {
		w.renderResult()
		return
	}

	chosen := w.state.Answers[question.ID]
	options := make([]view.OptionView, 0, len(question.Options))
	for _, opt := range question.Options {
		options = append(options, view.OptionView{
			ID:       opt.ID,
			Text:     opt.Text,
			Selected: chosen != "" && chosen == opt.ID,
			Action:   view.SelectAction{QuestionID: question.ID, OptionID: opt.ID},
		})
	}

	w.show(view.View{
		Screen: view.ScreenQuestion,
		Route:  w.location,
		Title:  w.state.Quiz.Title,
		Question: &view.QuestionView{
			ID:      question.ID,
			Number:  index + 1,
			Text:    question.Text,
			Options: options,
		},
		NextVisible:   true,
		ResultVisible: false,
	})
}

func (w *Widget) renderResult() {
	result := quiz.Grade(w.state.Quiz, w.state.Answers)

	w.show(view.View{
		Screen: view.ScreenResult,
		Route:  w.location,
		Title:  w.state.Quiz.Title,
		Result: &view.ResultView{
			Score:   result.Score,
			Total:   result.Total,
			Summary: fmt.Sprintf("Você acertou %d de %d.", result.Score, result.Total),
		},
		NextVisible:   false,
		ResultVisible: true,
	})

	w.logger.Info("Result computed",
		zap.String("session_id", w.state.SessionID.String()),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Any("details", result.Details),
		zap.Any("answers", w.state.Answers.Entries()),
	)

	if w.state.MarkCompleted() {
		if w.metrics != nil {
			w.metrics.RecordCompletion(result.Score, result.Total)
		}
		w.send(bridge.QuizCompleted{Score: result.Score, Total: result.Total})
	}
}

func (w *Widget) show(v view.View) {
	w.current = &v
	w.display.Show(v)
}

// send delivers msg to the host; a failed send is logged and dropped.
func (w *Widget) send(msg bridge.Outbound) {
	if err := w.transport.Send(msg); err != nil {
		w.logger.Warn("Failed to send message to host",
			zap.String("type", string(msg.Kind())),
			zap.Error(err),
		)
		w.recordFailure(directionOut, string(msg.Kind()))
		return
	}
	w.recordMessage(directionOut, string(msg.Kind()))
}

func (w *Widget) recordMessage(direction, kind string) {
	if w.metrics != nil {
		w.metrics.RecordBridgeMessage(direction, kind)
	}
}

func (w *Widget) recordFailure(direction, kind string) {
	if w.metrics != nil {
		w.metrics.RecordBridgeFailure(direction, kind)
	}
}
