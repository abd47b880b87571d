package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"polynomial-residence/internal/common/logging"
	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/navigation"
	"polynomial-residence/internal/residence/service"
	"polynomial-residence/internal/residence/shell"
	"polynomial-residence/internal/residence/views"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app      *fiber.App
	sessions *service.SessionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	c := catalog.Default()
	l, err := floorplan.Build(c)
	require.NoError(t, err)
	v, err := views.New(c, l)
	require.NoError(t, err)

	sessions := service.NewSessionManager(time.Hour, time.Minute, func() *shell.Shell {
		return shell.New(c, l, v, floorplan.DefaultScale)
	})
	pages, err := NewPageHandler(sessions, v, l, floorplan.DefaultScale, time.Hour, logging.NewNop())
	require.NoError(t, err)

	// default config: request strings are reused between requests, so the
	// handlers must copy whatever a session keeps
	app := fiber.New()
	Register(app, Routes{
		Pages: pages,
		API:   NewAPIHandler(c, l),
		Ready: func() error { return nil },
	})
	return &testServer{app: app, sessions: sessions}
}

// browser carries the session cookie between requests.
type browser struct {
	t      *testing.T
	srv    *testServer
	cookie *http.Cookie
}

func (s *testServer) browser(t *testing.T) *browser {
	return &browser{t: t, srv: s}
}

func (b *browser) do(method, path string, htmx bool) (*http.Response, string) {
	b.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	resp, err := b.srv.app.Test(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie {
			b.cookie = ck
		}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) page() string {
	b.t.Helper()
	resp, body := b.do(http.MethodGet, "/", false)
	require.Equal(b.t, fiber.StatusOK, resp.StatusCode)
	return body
}

// ============================================================
// Pages
// ============================================================

func TestIndexStartsSessionOnHome(t *testing.T) {
	srv := newTestServer(t)
	b := srv.browser(t)

	body := b.page()
	assert.Contains(t, body, "Explore Individual Rooms")
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
	assert.Equal(t, 1, srv.sessions.Count())

	b.page()
	assert.Equal(t, 1, srv.sessions.Count())
}

func TestMenuPostRedirectsToIndex(t *testing.T) {
	b := newTestServer(t).browser(t)
	b.page()

	resp, _ := b.do(http.MethodPost, "/nav/technical", false)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Contains(t, b.page(), "Technical Room Analysis")

	resp, _ = b.do(http.MethodPost, "/nav/attic", false)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, b.page(), "Technical Room Analysis")
}

func TestRoomDetailAndBack(t *testing.T) {
	b := newTestServer(t).browser(t)
	b.page()

	b.do(http.MethodPost, "/rooms/master-bedroom/open", false)
	assert.Contains(t, b.page(), "<h1>Master Bedroom</h1>")

	// the menu is not offered while a room is open
	b.do(http.MethodPost, "/nav/cost-analysis", false)
	assert.Contains(t, b.page(), "<h1>Master Bedroom</h1>")

	b.do(http.MethodPost, "/back", false)
	b.do(http.MethodPost, "/rooms/kitchen/open", false)
	body := b.page()
	assert.Contains(t, body, "<h1>Kitchen</h1>")
	assert.NotContains(t, body, "Master Bedroom")
}

func TestSessionsDoNotShareState(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.browser(t)
	bob := srv.browser(t)
	alice.page()
	bob.page()

	alice.do(http.MethodPost, "/nav/floor-plan", false)
	assert.Contains(t, alice.page(), `id="room-kitchen"`)
	assert.Contains(t, bob.page(), "Explore Individual Rooms")
}

func (b *browser) shell() *shell.Shell {
	b.t.Helper()
	require.NotNil(b.t, b.cookie)
	sh, ok := b.srv.sessions.Resolve(b.cookie.Value)
	require.True(b.t, ok, "session lost")
	return sh
}

// busy sends the kind of traffic another visitor produces.
func (b *browser) busy(rounds int) {
	for range rounds {
		b.do(http.MethodPost, "/rooms/zzzzzzz/open", false)
		b.do(http.MethodGet, "/api/v1/rooms/qqqqqqq", false)
		b.do(http.MethodPost, "/nav/floor-plan", false)
		b.do(http.MethodPost, "/floor-plan/hover/living-room", true)
		b.do(http.MethodPost, "/floor-plan/hover/bedroom-2", true)
		b.do(http.MethodPost, "/nav/home", false)
	}
}

func TestRoomDetailSurvivesOtherTraffic(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.browser(t)
	bob := srv.browser(t)

	alice.page()
	alice.do(http.MethodPost, "/rooms/kitchen/open", false)
	token := alice.cookie.Value

	bob.page()
	bob.busy(20)

	assert.Equal(t, navigation.RoomDetail{RoomID: "kitchen"}, alice.shell().State())
	assert.Contains(t, alice.page(), "<h1>Kitchen</h1>")
	assert.Equal(t, token, alice.cookie.Value)
	assert.Equal(t, 2, srv.sessions.Count())
}

func TestSessionTokenSurvivesOtherTraffic(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.browser(t)
	bob := srv.browser(t)

	alice.page()
	alice.page()
	token := alice.cookie.Value

	bob.page()
	bob.busy(20)

	_, ok := srv.sessions.Resolve(token)
	assert.True(t, ok)
	alice.page()
	assert.Equal(t, token, alice.cookie.Value)
	assert.Equal(t, 2, srv.sessions.Count())
}

func TestHoverSurvivesOtherTraffic(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.browser(t)
	bob := srv.browser(t)

	alice.page()
	alice.do(http.MethodPost, "/nav/floor-plan", false)
	alice.do(http.MethodPost, "/floor-plan/hover/kitchen", true)

	bob.page()
	bob.busy(20)

	hovered, ok := alice.shell().Hovered()
	require.True(t, ok)
	assert.Equal(t, "kitchen", hovered)
	assert.Equal(t, navigation.FloorPlan{}, alice.shell().State())

	resp, _ := alice.do(http.MethodPost, "/floor-plan/hover/kitchen", true)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// ============================================================
// Floor plan
// ============================================================

func TestFloorPlanHoverFragments(t *testing.T) {
	b := newTestServer(t).browser(t)
	b.page()
	b.do(http.MethodPost, "/nav/floor-plan", false)

	resp, body := b.do(http.MethodPost, "/floor-plan/hover/kitchen", true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<g class="room hovered" data-room-id="kitchen"`)
	assert.NotContains(t, body, "<html")

	resp, _ = b.do(http.MethodPost, "/floor-plan/hover/kitchen", true)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = b.do(http.MethodPost, "/floor-plan/hover/hallway", true)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, body = b.do(http.MethodPost, "/floor-plan/leave", true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "room hovered")
}

func TestFloorPlanClick(t *testing.T) {
	b := newTestServer(t).browser(t)
	b.page()
	b.do(http.MethodPost, "/nav/floor-plan", false)

	resp, _ := b.do(http.MethodPost, "/floor-plan/click/hallway", true)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = b.do(http.MethodPost, "/floor-plan/click/living-room", true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("HX-Redirect"))
	assert.Contains(t, b.page(), "<h1>Living Room</h1>")
}

func TestHoverOffFloorPlanReloads(t *testing.T) {
	b := newTestServer(t).browser(t)
	b.page()

	resp, _ := b.do(http.MethodPost, "/floor-plan/hover/kitchen", true)
	assert.Equal(t, "/", resp.Header.Get("HX-Redirect"))
	assert.Contains(t, b.page(), "Explore Individual Rooms")
}

// ============================================================
// Print & downloads
// ============================================================

func TestPrintAndDownloads(t *testing.T) {
	b := newTestServer(t).browser(t)

	resp, body := b.do(http.MethodGet, "/print", false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `onload="window.print()"`)
	assert.Contains(t, body, `<svg`)

	resp, body = b.do(http.MethodGet, "/floor-plan.svg", false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotContains(t, body, "hx-post")
	l, err := floorplan.Build(catalog.Default())
	require.NoError(t, err)
	assert.NoError(t, floorplan.Audit(strings.NewReader(body), l, floorplan.DefaultScale))

	resp, body = b.do(http.MethodGet, "/floor-plan.png", false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "\x89PNG", body[:4])
}

// ============================================================
// API
// ============================================================

func getJSON(t *testing.T, srv *testServer, path string, target any) *http.Response {
	t.Helper()
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp
}

func TestAPIRooms(t *testing.T) {
	srv := newTestServer(t)

	var list struct {
		Rooms []struct {
			ID string `json:"id"`
		} `json:"rooms"`
		Count int `json:"count"`
	}
	getJSON(t, srv, "/api/v1/rooms", &list)
	assert.Equal(t, 7, list.Count)
	require.Len(t, list.Rooms, 7)
	assert.Equal(t, "master-bedroom", list.Rooms[0].ID)

	var room struct {
		Name string `json:"name"`
	}
	getJSON(t, srv, "/api/v1/rooms/kitchen", &room)
	assert.Equal(t, "Kitchen", room.Name)

	var failure map[string]string
	resp := getJSON(t, srv, "/api/v1/rooms/garage", &failure)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "room not found", failure["error"])
}

func TestAPIInvoiceAndLayout(t *testing.T) {
	srv := newTestServer(t)

	var invoice invoiceResponse
	getJSON(t, srv, "/api/v1/invoice", &invoice)
	require.NotEmpty(t, invoice.Items)
	assert.Equal(t, "A", invoice.Items[0].Letter)
	var sum float64
	for i, item := range invoice.Items {
		if i > 0 {
			assert.GreaterOrEqual(t, invoice.Items[i-1].Total, item.Total)
		}
		sum += item.Total
	}
	assert.InDelta(t, invoice.GrandTotal, sum, 0.005)

	b := srv.browser(t)
	b.page()
	b.do(http.MethodPost, "/nav/cost-analysis", false)
	page := b.page()
	for _, item := range invoice.Items {
		assert.Contains(t, page, "ITEM "+item.Letter+": "+item.Name)
	}

	var layout layoutResponse
	getJSON(t, srv, "/api/v1/layout", &layout)
	assert.Len(t, layout.Rooms, 7)
	assert.Greater(t, layout.Hallway.Width, 0.0)
}

func TestHealthProbes(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/health/live", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app := fiber.New()
	app.Get("/ready", ReadinessProbe(func() error { return errors.New("catalog not loaded") }))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestDocsDescribeEveryAPIRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var apiRoutes int
	for _, route := range srv.app.GetRoutes(true) {
		if route.Method != fiber.MethodGet || !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		apiRoutes++
		path := strings.ReplaceAll(route.Path, ":id", "{id}")
		assert.Contains(t, string(doc), "\n  "+path+":\n", "undocumented route %s", route.Path)
	}
	assert.Equal(t, 4, apiRoutes)

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "supportedSubmitMethods: ['get']")
}
