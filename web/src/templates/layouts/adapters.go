package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Node adapts a gomponents node so it can be passed to Base or to anything
// else expecting a templ.Component.
func Node(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

// embed renders a templ component inside a gomponents tree. gomponents has no
// context in Render, so the caller's ctx is captured here.
func embed(ctx context.Context, component templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return component.Render(ctx, w)
	})
}
