package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Home is the landing page content.
func Home() g.Node {
	return h.Section(
		h.H1(g.Text("Home")),
		h.P(g.Text("Open the dashboard to see the latest figures.")),
	)
}

// Login is the static login page. Signing in is handled by the identity
// provider that issues the dashboard token, not by this application.
func Login() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section><h1>Login</h1>`+
			`<p>Sign in with your organisation account to access the dashboard.</p></section>`)
		return err
	})
}
