// Package widget implements the quiz widget: session state, routing between
// the question and result screens, rendering of declarative views and the
// dispatch of host messages.
//
// Screens:
//   - Question view: /pergunta-<N>, shows question N and the "next" control
//   - Result view: /resultado, shows the score; reports completion once
//
// Transitions only happen on route changes, either from the user (next) or
// from the host (page loads, loadAnswers).
//
// Example Usage:
//
//	w := widget.New(q, bridge.NewLocalTransport(logger), view.NewScreen(), logger)
//	w.Open("/")
//	w.SelectOption("q1", "a")
//	w.NavigateToNext()
package widget
