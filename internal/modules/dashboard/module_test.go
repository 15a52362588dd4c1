package dashboard

import (
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/dashview/internal/config"
	"github.com/nfrund/dashview/internal/credentials"
	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/middleware"
	"github.com/nfrund/dashview/internal/pubsub"
	"github.com/nfrund/dashview/internal/registry"
	"github.com/nfrund/dashview/internal/rendering"
)

const (
	testSessionSecret = "a-very-secret-key-for-testing-!"
	testSessionName   = "dashview-test"
)

type fakeAPI struct {
	*httptest.Server
	mu     sync.Mutex
	auths  []string
	status int
	body   string
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{status: status, body: body}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.auths = append(api.auths, r.Header.Get("Authorization"))
		api.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.body))
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.auths...)
}

type testApp struct {
	e   *echo.Echo
	reg *registry.Registry
	bus *pubsub.WatermillBridge
}

func setupApp(t *testing.T, api *fakeAPI) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	e.GET("/seed", func(c echo.Context) error {
		sess, _ := session.Get(testSessionName, c)
		sess.Values[credentials.TokenKey] = c.QueryParam("token")
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bus.Close() })

	// Core services are shared through the registry, as app.NewRegistry does.
	reg := registry.New(&config.Config{SessionName: testSessionName})
	registry.Set[rendering.Renderer](reg, registry.RendererKey, rendering.NewUniversalRenderer())
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)

	m := New(Dependencies{
		Fetcher: dash.NewClient(api.URL + "/api/dashboard"),
	})
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(ctx, e.Group("/"+m.Name()), reg))

	return &testApp{e: e, reg: reg, bus: bus}
}

func (a *testApp) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) seed(t *testing.T, token string) []*http.Cookie {
	t.Helper()
	rec := a.get(t, "/seed?token="+token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return rec.Result().Cookies()
}

func TestDashboardPage(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"visits": 5}`)
	app := setupApp(t, api)

	rec := app.get(t, "/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Dashboard</h1>")
	assert.Contains(t, body, "<pre>null</pre>")
	assert.Contains(t, body, `hx-get="/dashboard/payload"`)
	assert.Contains(t, body, `<a href="/dashboard" aria-current="page">Dashboard</a>`)
	assert.Empty(t, api.calls(), "rendering the page must not fetch")
}

func TestDashboardPayload(t *testing.T) {
	t.Run("fetches once with the session token", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `{"visits": 5}`)
		app := setupApp(t, api)
		cookies := app.seed(t, "abc123")

		rec := app.get(t, "/dashboard/payload", cookies)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, []string{"Bearer abc123"}, api.calls())
		assert.Contains(t, html.UnescapeString(rec.Body.String()), "<pre>{\n  \"visits\": 5\n}</pre>")
		assert.Contains(t, rec.Body.String(), `data-state="loaded"`)
	})

	t.Run("missing token still sends the request", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `{}`)
		app := setupApp(t, api)

		rec := app.get(t, "/dashboard/payload", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		calls := api.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "Bearer", strings.TrimSpace(calls[0]))
	})

	t.Run("upstream rejection renders a failure notice", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusForbidden, `{"message": "Token is invalid!"}`)
		app := setupApp(t, api)

		rec := app.get(t, "/dashboard/payload", app.seed(t, "expired"))
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Contains(t, rec.Body.String(), `data-state="failed"`)
		assert.Contains(t, rec.Body.String(), `role="alert"`)
		assert.Contains(t, rec.Body.String(), "<pre>null</pre>")
	})

	t.Run("publishes a fetch event", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusBadGateway, `upstream down`)
		app := setupApp(t, api)

		events := make(chan FetchEvent, 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, FetchSettled.Subscribe(ctx, app.bus, func(ctx context.Context, ev FetchEvent, _ pubsub.Message) error {
			events <- ev
			return nil
		}))

		app.get(t, "/dashboard/payload", nil)

		select {
		case ev := <-events:
			assert.Equal(t, "failed", ev.State)
			assert.Equal(t, "status", ev.ErrorKind)
			assert.Equal(t, http.StatusBadGateway, ev.StatusCode)
			assert.NotEmpty(t, ev.ViewID)
		case <-time.After(2 * time.Second):
			t.Fatal("fetch event not published")
		}
	})
}

func TestModuleRegister(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	app := setupApp(t, api)

	fetcher, ok := registry.Get(app.reg, registry.DashboardFetcherKey)
	require.True(t, ok)
	client, ok := fetcher.(*dash.Client)
	require.True(t, ok)
	assert.Equal(t, api.URL+"/api/dashboard", client.URL())
}

func TestStaticCredentialsOverride(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"ok": true}`)
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()

	m := New(Dependencies{
		Fetcher: dash.NewClient(api.URL),
		Credentials: func(echo.Context) credentials.Provider {
			return credentials.Static("from-config")
		},
	})
	reg := registry.New(&config.Config{})
	registry.Set[rendering.Renderer](reg, registry.RendererKey, rendering.NewUniversalRenderer())
	require.NoError(t, m.Boot(context.Background(), e.Group("/dashboard"), reg))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/payload", nil))

	// No event bus in the registry: the fragment still renders.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="loaded"`)
	assert.Equal(t, []string{"Bearer from-config"}, api.calls())
}

func TestBootRequiresRenderer(t *testing.T) {
	m := New(Dependencies{Fetcher: dash.NewClient("http://127.0.0.1:5000/api/dashboard")})
	e := echo.New()

	assert.Panics(t, func() {
		_ = m.Boot(context.Background(), e.Group("/dashboard"), registry.New(&config.Config{}))
	})
}
