package widget

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/quiz"
	"github.com/GriffinCanCode/quizbridge/internal/domain/view"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/monitoring"
)

type mockTransport struct {
	hostDriven bool
	sent       []bridge.Outbound
	err        error
}

func (m *mockTransport) Send(msg bridge.Outbound) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockTransport) HostDriven() bool { return m.hostDriven }

func (m *mockTransport) ofKind(kind bridge.Kind) []bridge.Outbound {
	var out []bridge.Outbound
	for _, msg := range m.sent {
		if msg.Kind() == kind {
			out = append(out, msg)
		}
	}
	return out
}

type fixture struct {
	widget    *Widget
	transport *mockTransport
	screen    *view.Screen
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T, hostDriven bool) *fixture {
	t.Helper()
	q, err := quiz.Sample()
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	transport := &mockTransport{hostDriven: hostDriven}
	screen := view.NewScreen()

	return &fixture{
		widget:    New(q, transport, screen, zap.New(core)),
		transport: transport,
		screen:    screen,
		logs:      logs,
	}
}

func (f *fixture) current(t *testing.T) view.View {
	t.Helper()
	v, ok := f.screen.Current()
	require.True(t, ok, "nothing rendered")
	return v
}

const hostQuiz = `{
	"type": "loadQuiz",
	"payload": {
		"title": "Host quiz",
		"questions": [
			{"id": "h1", "text": "Um?", "options": [{"id": "x", "text": "X", "correct": true}, {"id": "y", "text": "Y"}]},
			{"id": "h2", "text": "Dois?", "options": [{"id": "x", "text": "X"}, {"id": "y", "text": "Y", "correct": true}]}
		]
	}
}`

func TestOpenNormalizesUnknownPath(t *testing.T) {
	f := newFixture(t, false)

	v := f.widget.Open("/")

	assert.Equal(t, "/pergunta-1", v.Route)
	assert.Equal(t, "/pergunta-1", f.widget.Location())
	assert.Equal(t, v, f.current(t))
	assert.Equal(t, view.ScreenQuestion, v.Screen)
	assert.Equal(t, "q1", v.Question.ID)
	assert.Equal(t, 1, v.Question.Number)
	assert.True(t, v.NextVisible)
	assert.False(t, v.ResultVisible)
}

func TestOpenResult(t *testing.T) {
	f := newFixture(t, false)

	f.widget.Open("/resultado")

	v := f.current(t)
	assert.Equal(t, view.ScreenResult, v.Screen)
	assert.Equal(t, "Você acertou 0 de 3.", v.Result.Summary)
	assert.False(t, v.NextVisible)
	assert.Len(t, f.transport.ofKind(bridge.KindQuizCompleted), 1)
}

func TestOutOfRangeIndexRendersResult(t *testing.T) {
	f := newFixture(t, false)

	f.widget.Open("/pergunta-9")

	assert.Equal(t, view.ScreenResult, f.current(t).Screen)
}

func TestOpenReturnsDeferredRestoreView(t *testing.T) {
	f := newFixture(t, false)
	f.widget.OnNativeMessage(`{"type":"loadAnswers","payload":[{"questionId":"q2","optionId":"b"}]}`)

	v := f.widget.Open("/pergunta-2")

	require.NotNil(t, v.Question)
	for _, opt := range v.Question.Options {
		assert.Equal(t, opt.ID == "b", opt.Selected)
	}
}

func TestHistorySkipsRepeatsAndIsBounded(t *testing.T) {
	f := newFixture(t, false)

	f.widget.Open("/pergunta-1")
	f.widget.NavigateToNext()
	// The browser follows the redirect to the route just pushed.
	f.widget.Open("/pergunta-2")
	f.widget.Open("/pergunta-2")
	assert.Equal(t, []string{"/pergunta-1", "/pergunta-2"}, f.widget.History())

	for i := 0; i < 3*maxHistory; i++ {
		f.widget.Open(fmt.Sprintf("/pergunta-%d", i%3+1))
	}
	history := f.widget.History()
	assert.Len(t, history, maxHistory)
	assert.Equal(t, fmt.Sprintf("/pergunta-%d", (3*maxHistory-1)%3+1), history[len(history)-1])
}

func TestSnapshotStartedAt(t *testing.T) {
	before := time.Now().Add(-time.Second)
	f := newFixture(t, false)

	snap := f.widget.Snapshot()
	assert.False(t, snap.StartedAt.Before(before))
	assert.False(t, snap.StartedAt.After(time.Now().Add(time.Second)))
}

func TestSelectOption(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")

	require.NoError(t, f.widget.SelectOption("q1", "b"))
	require.NoError(t, f.widget.SelectOption("q1", "a"))

	v := f.current(t)
	selected := map[string]bool{}
	for _, opt := range v.Question.Options {
		selected[opt.ID] = opt.Selected
	}
	assert.Equal(t, map[string]bool{"a": true, "b": false, "c": false}, selected)

	sent := f.transport.ofKind(bridge.KindAnswerSelected)
	require.Len(t, sent, 2)
	assert.Equal(t, bridge.AnswerSelected{QuestionID: "q1", OptionID: "a", Route: "/pergunta-1"}, sent[1])
}

func TestSelectKeepsOtherQuestions(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	f.widget.NavigateToNext()

	require.NoError(t, f.widget.SelectOption("q2", "c"))
	require.NoError(t, f.widget.SelectOption("q2", "b"))

	snap := f.widget.Snapshot()
	assert.Equal(t, []quiz.Entry{
		{QuestionID: "q1", OptionID: "a"},
		{QuestionID: "q2", OptionID: "b"},
	}, snap.Answers)

	// The q2 screen is untouched by a selection for q1.
	require.NoError(t, f.widget.SelectOption("q1", "c"))
	for _, opt := range f.current(t).Question.Options {
		assert.Equal(t, opt.ID == "b", opt.Selected, "option %s", opt.ID)
	}
}

func TestSelectRejectsUnknownIDs(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")

	err := f.widget.SelectOption("q9", "a")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	err = f.widget.SelectOption("q1", "z")
	assert.ErrorIs(t, err, ErrUnknownOption)

	assert.Empty(t, f.widget.Snapshot().Answers)
	assert.Empty(t, f.transport.ofKind(bridge.KindAnswerSelected))
}

func TestRenderQuizMarksStoredAnswer(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-2")
	require.NoError(t, f.widget.SelectOption("q2", "b"))

	f.widget.Open("/pergunta-2")

	for _, opt := range f.current(t).Question.Options {
		assert.Equal(t, opt.ID == "b", opt.Selected)
	}
}

func TestNavigateToNextLocal(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")

	assert.Equal(t, "/pergunta-2", f.widget.NavigateToNext())
	assert.Equal(t, "q2", f.current(t).Question.ID)

	assert.Equal(t, "/pergunta-3", f.widget.NavigateToNext())
	assert.Equal(t, "/resultado", f.widget.NavigateToNext())
	assert.Equal(t, view.ScreenResult, f.current(t).Screen)

	assert.Equal(t, []string{"/pergunta-1", "/pergunta-2", "/pergunta-3", "/resultado"}, f.widget.History())

	navs := f.transport.ofKind(bridge.KindNavigate)
	require.Len(t, navs, 3)
	assert.Equal(t, bridge.Navigate{Route: "/resultado"}, navs[2])
	assert.Len(t, f.transport.ofKind(bridge.KindQuizCompleted), 1)
}

func TestNavigateToNextHostDriven(t *testing.T) {
	f := newFixture(t, true)
	f.widget.Open("/pergunta-3")

	route := f.widget.NavigateToNext()

	assert.Equal(t, "/resultado", route)
	assert.Equal(t, "/pergunta-3", f.widget.Location(), "host performs the navigation")
	assert.Equal(t, view.ScreenQuestion, f.current(t).Screen)
	assert.Equal(t, []bridge.Outbound{bridge.Navigate{Route: "/resultado"}}, f.transport.sent)
}

func TestGrade(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	require.NoError(t, f.widget.SelectOption("q2", "b"))
	require.NoError(t, f.widget.SelectOption("q3", "c"))

	result := f.widget.Grade()

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.Total)
	flags := []bool{}
	for _, d := range result.Details {
		flags = append(flags, d.IsCorrect)
	}
	assert.Equal(t, []bool{true, true, false}, flags)
	assert.Equal(t, "a", result.Details[2].CorrectOptionID)
}

func TestRenderResultNotifiesOnce(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/resultado")

	f.widget.RenderResult()
	f.widget.RenderResult()

	completed := f.transport.ofKind(bridge.KindQuizCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, bridge.QuizCompleted{Score: 0, Total: 3}, completed[0])
	assert.True(t, f.widget.Snapshot().Completed)
}

func TestRenderQuizResetsCompletion(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/resultado")
	f.widget.Open("/pergunta-1")
	assert.False(t, f.widget.Snapshot().Completed)

	f.widget.Open("/resultado")

	assert.Len(t, f.transport.ofKind(bridge.KindQuizCompleted), 2)
}

func TestLoadQuizResetsState(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	f.widget.RenderResult()
	before := f.widget.Snapshot()
	require.True(t, before.Completed)

	f.widget.OnNativeMessage(hostQuiz)

	after := f.widget.Snapshot()
	assert.Empty(t, after.Answers)
	assert.False(t, after.Completed)
	assert.Equal(t, "Host quiz", after.Title)
	assert.NotEqual(t, before.SessionID, after.SessionID)
	assert.Equal(t, "h1", f.current(t).Question.ID)

	f.widget.RenderResult()
	completed := f.transport.ofKind(bridge.KindQuizCompleted)
	require.Len(t, completed, 2)
	assert.Equal(t, bridge.QuizCompleted{Score: 0, Total: 2}, completed[1])
}

func TestLoadQuizRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	before := f.widget.Snapshot()

	f.widget.OnNativeMessage(`{"type":"loadQuiz","payload":{"title":"bad","questions":[{"id":"q1"},{"id":"q1"}]}}`)

	after := f.widget.Snapshot()
	assert.Equal(t, before.SessionID, after.SessionID)
	assert.Equal(t, before.Answers, after.Answers)
	assert.Equal(t, "Quiz de Exemplo", after.Title)
	assert.Equal(t, 1, f.logs.FilterMessage("Rejected quiz from host").Len())
}

func TestLoadQuizNullPayloadChangesNothing(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	before := f.widget.Snapshot()
	sentBefore := len(f.transport.sent)

	f.widget.OnNativeMessage(`{"type":"loadQuiz","payload":null}`)

	after := f.widget.Snapshot()
	assert.Equal(t, "Quiz de Exemplo", after.Title)
	assert.Equal(t, before.SessionID, after.SessionID)
	assert.Equal(t, before.Answers, after.Answers)
	assert.False(t, after.Completed)
	assert.Equal(t, view.ScreenQuestion, f.current(t).Screen)
	assert.Len(t, f.transport.sent, sentBefore)
	assert.Empty(t, f.transport.ofKind(bridge.KindQuizCompleted))
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to handle host message").Len())
}

func TestLoadAnswers(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q3", "b"))

	f.widget.OnNativeMessage(map[string]interface{}{
		"type": "loadAnswers",
		"payload": []interface{}{
			map[string]interface{}{"questionId": "q1", "optionId": "c"},
			map[string]interface{}{"questionId": "q2"},
			map[string]interface{}{"optionId": "a"},
		},
	})

	assert.Equal(t, []quiz.Entry{{QuestionID: "q1", OptionID: "c"}}, f.widget.Snapshot().Answers)
	for _, opt := range f.current(t).Question.Options {
		assert.Equal(t, opt.ID == "c", opt.Selected)
	}
}

func TestLoadAnswersOnResultRoute(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/resultado")

	f.widget.OnNativeMessage(`{"type":"loadAnswers","payload":[{"questionId":"q1","optionId":"a"},{"questionId":"q2","optionId":"b"}]}`)

	v := f.current(t)
	assert.Equal(t, view.ScreenResult, v.Screen)
	assert.Equal(t, "Você acertou 2 de 3.", v.Result.Summary)
	// Completion was already reported on the first result render.
	assert.Len(t, f.transport.ofKind(bridge.KindQuizCompleted), 1)
}

func TestLoadAnswersBeforePageLoadIsDeferred(t *testing.T) {
	f := newFixture(t, false)

	f.widget.OnNativeMessage(`{"type":"loadAnswers","payload":[{"questionId":"q1","optionId":"a"}]}`)

	_, rendered := f.screen.Current()
	assert.False(t, rendered)

	f.widget.Open("/resultado")

	v := f.current(t)
	assert.Equal(t, view.ScreenResult, v.Screen)
	assert.Equal(t, 1, v.Result.Score)
	assert.Len(t, f.transport.ofKind(bridge.KindQuizCompleted), 1)
}

func TestOnNativeMessageIgnoresUnknownAndMalformed(t *testing.T) {
	f := newFixture(t, false)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("q1", "a"))
	sentBefore := len(f.transport.sent)

	f.widget.OnNativeMessage(`{"type":"ping"}`)
	f.widget.OnNativeMessage(`{"type":`)
	f.widget.OnNativeMessage(`{"type":"loadAnswers"}`)

	assert.Equal(t, []quiz.Entry{{QuestionID: "q1", OptionID: "a"}}, f.widget.Snapshot().Answers)
	assert.Len(t, f.transport.sent, sentBefore)
	assert.Equal(t, 1, f.logs.FilterMessage("Ignoring host message").Len())
	assert.Equal(t, 2, f.logs.FilterMessage("Failed to handle host message").Len())
}

func TestSendFailureIsLogged(t *testing.T) {
	f := newFixture(t, false)
	f.transport.err = errors.New("host gone")
	metrics := monitoring.NewMetrics()
	f.widget.WithMetrics(metrics)

	assert.NotPanics(t, func() {
		f.widget.Open("/resultado")
	})

	assert.Equal(t, 1, f.logs.FilterMessage("Failed to send message to host").Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BridgeFailures.WithLabelValues("out", "quizCompleted")))
	// The flag is still set: completion is not retried.
	assert.True(t, f.widget.Snapshot().Completed)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, false)
	metrics := monitoring.NewMetrics()
	f.widget.WithMetrics(metrics)

	f.widget.OnNativeMessage(hostQuiz)
	f.widget.Open("/pergunta-1")
	require.NoError(t, f.widget.SelectOption("h1", "x"))
	f.widget.Open("/resultado")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.QuizzesLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.QuizzesCompleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BridgeMessages.WithLabelValues("in", "loadQuiz")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BridgeMessages.WithLabelValues("out", "answerSelected")))
}
