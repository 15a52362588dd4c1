package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/dashview/web/src/templates/components"
)

// HTMXScript is the htmx build loaded by every page.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the HTML5 document shell with the navbar.
// current is the path of the page being rendered, used to mark the active link.
//
// Pages are templ components so they can be written either way: gomponents
// content goes through Node first.
func Base(title, current string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(title, current, embed(ctx, content)).Render(w)
	})
}

func document(title, current string, content g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			h.Script(h.Src(HTMXScript), h.Defer()),
		},
		Body: []g.Node{
			components.Navbar(current),
			h.Main(h.Class("container"), content),
		},
	})
}
