package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// NavItem is a single navigation link.
type NavItem struct {
	Label string
	Href  string
}

// NavItems are the links shown in the navigation bar, in display order.
var NavItems = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Login", Href: "/login"},
}

// Navbar renders the static navigation bar. The link matching current, if
// any, is marked with aria-current.
func Navbar(current string) g.Node {
	return h.Nav(
		h.Class("navbar"),
		g.Map(NavItems, func(item NavItem) g.Node {
			return h.A(
				h.Href(item.Href),
				g.If(item.Href == current, h.Aria("current", "page")),
				g.Text(item.Label),
			)
		}),
	)
}
