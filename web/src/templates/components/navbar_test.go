package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchorRe = regexp.MustCompile(`<a href="([^"]*)"[^>]*>([^<]*)</a>`)

func render(t *testing.T, current string) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Navbar(current).Render(&sb))
	return sb.String()
}

func TestNavbar(t *testing.T) {
	t.Run("renders exactly three links", func(t *testing.T) {
		html := render(t, "")

		matches := anchorRe.FindAllStringSubmatch(html, -1)
		require.Len(t, matches, 3)

		want := [][2]string{{"/", "Home"}, {"/dashboard", "Dashboard"}, {"/login", "Login"}}
		for i, m := range matches {
			assert.Equal(t, want[i][0], m[1])
			assert.Equal(t, want[i][1], m[2])
		}
	})

	t.Run("no other interactive elements", func(t *testing.T) {
		html := render(t, "")

		assert.True(t, strings.HasPrefix(html, `<nav`))
		assert.Equal(t, 3, strings.Count(html, "<a "))
		for _, tag := range []string{"<button", "<form", "<input", "<select", "<textarea"} {
			assert.NotContains(t, html, tag)
		}
	})

	t.Run("marks the current page", func(t *testing.T) {
		html := render(t, "/dashboard")

		assert.Contains(t, html, `<a href="/dashboard" aria-current="page">Dashboard</a>`)
		assert.Equal(t, 1, strings.Count(html, "aria-current"))
	})
}
