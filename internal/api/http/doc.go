// Package http exposes the quiz widget over HTTP.
//
// Page loads render the current screen as HTML. Form posts drive option
// selection and navigation, and POST /native accepts one host message for
// hosts that cannot hold a WebSocket open.
//
// Routes:
//
//	GET  /health        liveness and bridge mode
//	GET  /state         widget snapshot as JSON
//	POST /native        host message, answered with 202
//	POST /select        choose an option, 303 back to the page
//	POST /next          advance, 303 in local mode or 204 when the host navigates
//	GET  /, /:route     page load
package http
