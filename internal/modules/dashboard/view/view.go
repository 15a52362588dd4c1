// Package view renders the dashboard page and its payload fragment.
package view

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	dash "github.com/nfrund/dashview/internal/dashboard"
)

// PayloadID is the element id of the swappable payload block.
const PayloadID = "dashboard-payload"

// Page is the dashboard as first rendered: heading plus an unloaded payload
// block that asks payloadURL for its content once, when htmx loads it.
func Page(payloadURL string) g.Node {
	return h.Section(
		h.ID("dashboard"),
		h.H1(g.Text("Dashboard")),
		h.Div(
			h.ID(PayloadID),
			h.Data("state", dash.StateLoading.String()),
			hx.Get(payloadURL),
			hx.Trigger("load"),
			hx.Swap("outerHTML"),
			h.Pre(g.Text(dash.Unset)),
		),
	)
}

// Payload renders the settled payload block that replaces the one in Page.
func Payload(snap dash.Snapshot) g.Node {
	return h.Div(
		h.ID(PayloadID),
		h.Data("state", snap.State.String()),
		g.If(snap.State == dash.StateFailed,
			h.P(h.Class("alert"), h.Role("alert"),
				h.Strong(g.Text(FailureLabel(snap.Err))),
				g.Text(" "+FailureMessage(snap.Err)),
			),
		),
		h.Pre(g.Text(snap.Pretty())),
	)
}

// FailureLabel is the short heading of the failure notice, e.g. "Network error".
func FailureLabel(err error) string {
	kind := dash.KindOf(err)
	if kind == 0 {
		return "Error"
	}
	return cases.Title(language.English).String(kind.String()) + " error"
}

// FailureMessage describes a failed fetch for the user.
func FailureMessage(err error) string {
	var fe *dash.FetchError
	if !errors.As(err, &fe) {
		return "The dashboard could not be loaded."
	}
	switch fe.Kind {
	case dash.KindNetwork:
		return "The dashboard service could not be reached."
	case dash.KindStatus:
		if fe.StatusCode == http.StatusUnauthorized || fe.StatusCode == http.StatusForbidden {
			return fmt.Sprintf("You are not authorized to view the dashboard (status %d).", fe.StatusCode)
		}
		return fmt.Sprintf("The dashboard service answered with status %d.", fe.StatusCode)
	case dash.KindDecode:
		return "The dashboard service returned an unreadable response."
	default:
		return "The dashboard could not be loaded."
	}
}
