package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"polynomial-residence/internal/common/logging"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/navigation"
	"polynomial-residence/internal/residence/service"
	"polynomial-residence/internal/residence/shell"
	"polynomial-residence/internal/residence/views"

	"github.com/gofiber/fiber/v3"
)

const (
	// SessionCookie holds the session token of a browser.
	SessionCookie = "residence_session"

	shellLocal = "shell"
	logModule  = "PAGES"
)

// ============================================================
// Page Handler
// ============================================================

// PageHandler serves the HTML views. Navigation state lives in the
// session's Shell and never in the URL: every action posts and redirects
// back to /.
type PageHandler struct {
	sessions   *service.SessionManager
	views      *views.Views
	log        logging.Logger
	sessionTTL time.Duration

	staticSVG string
	png       []byte
}

func NewPageHandler(sessions *service.SessionManager, v *views.Views, layout *floorplan.Layout, scale float64, sessionTTL time.Duration, log logging.Logger) (*PageHandler, error) {
	static := floorplan.NewRenderer(layout, scale, nil).Render(floorplan.RenderOptions{})

	var png bytes.Buffer
	if err := floorplan.RasterizePNG(&png, layout, scale); err != nil {
		return nil, fmt.Errorf("rasterize floor plan: %w", err)
	}

	return &PageHandler{
		sessions:   sessions,
		views:      v,
		log:        log,
		sessionTTL: sessionTTL,
		staticSVG:  static,
		png:        png.Bytes(),
	}, nil
}

// Session resolves the session cookie to a Shell, starting a new session
// when the cookie is missing or expired.
func (h *PageHandler) Session() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, sh, created := h.sessions.Acquire(strings.Clone(c.Cookies(SessionCookie)))
		if created {
			h.log.Debug(logModule, "session started", map[string]any{"ip": c.IP()})
		}
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   int(h.sessionTTL.Seconds()),
		})
		c.Locals(shellLocal, sh)
		return c.Next()
	}
}

func shellOf(c fiber.Ctx) *shell.Shell {
	sh, _ := c.Locals(shellLocal).(*shell.Shell)
	return sh
}

// Index renders whatever page the session is on.
func (h *PageHandler) Index(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := shellOf(c).Render(&buf); err != nil {
		h.log.Error(logModule, "render failed", map[string]any{"error": err})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html")
	return c.Send(buf.Bytes())
}

// ============================================================
// Navigation actions
// ============================================================

func (h *PageHandler) Navigate(c fiber.Ctx) error {
	item, err := navigation.ParseMenuItem(param(c, "page"))
	if err == nil {
		err = shellOf(c).Navigate(item)
	}
	h.logRejected("menu", err, param(c, "page"))
	return h.backToIndex(c)
}

func (h *PageHandler) OpenRoom(c fiber.Ctx) error {
	h.logRejected("open room", shellOf(c).OpenRoom(param(c, "id")), param(c, "id"))
	return h.backToIndex(c)
}

func (h *PageHandler) Back(c fiber.Ctx) error {
	h.logRejected("back", shellOf(c).Back(), "")
	return h.backToIndex(c)
}

// ============================================================
// Floor plan pointer events
// ============================================================

// Hover answers with the redrawn diagram, or 204 when nothing changed.
func (h *PageHandler) Hover(c fiber.Ctx) error {
	changed, err := shellOf(c).HoverRoom(param(c, "id"))
	return h.diagramResponse(c, changed, err)
}

func (h *PageHandler) Leave(c fiber.Ctx) error {
	changed, err := shellOf(c).LeaveRoom()
	return h.diagramResponse(c, changed, err)
}

// Click opens the clicked room. Hallway and unknown ids are ignored.
func (h *PageHandler) Click(c fiber.Ctx) error {
	err := shellOf(c).ClickRoom(param(c, "id"))
	h.logRejected("floor plan click", err, param(c, "id"))
	if errors.Is(err, navigation.ErrUnknownRoom) && isHTMX(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return h.backToIndex(c)
}

func (h *PageHandler) diagramResponse(c fiber.Ctx, changed bool, err error) error {
	if err != nil {
		// the session left the floor plan, e.g. after expiry; reload the page
		h.logRejected("floor plan pointer", err, param(c, "id"))
		return h.backToIndex(c)
	}
	if !changed {
		return c.SendStatus(fiber.StatusNoContent)
	}

	svg, err := shellOf(c).RenderFloorPlan()
	if err != nil {
		return h.backToIndex(c)
	}
	c.Type("html")
	return c.SendString(svg)
}

// ============================================================
// Print & downloads
// ============================================================

func (h *PageHandler) Print(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.views.Print(&buf, h.staticSVG); err != nil {
		h.log.Error(logModule, "print render failed", map[string]any{"error": err})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

func (h *PageHandler) FloorPlanSVG(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="floor-plan.svg"`)
	return c.SendString(h.staticSVG)
}

func (h *PageHandler) FloorPlanPNG(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="floor-plan.png"`)
	return c.Send(h.png)
}

// ============================================================
// Helpers
// ============================================================

// backToIndex finishes an action: htmx requests get HX-Redirect, plain
// form posts a 303 to /.
func (h *PageHandler) backToIndex(c fiber.Ctx) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", "/")
		return c.SendStatus(fiber.StatusOK)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

// param copies a route parameter. Fiber reuses the request buffer once the
// handler returns, and the Shell keeps ids beyond that.
func param(c fiber.Ctx, key string) string {
	return strings.Clone(c.Params(key))
}

func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

func (h *PageHandler) logRejected(action string, err error, target string) {
	if err == nil {
		return
	}
	h.log.Warn(logModule, "navigation rejected", map[string]any{
		"action": action,
		"target": target,
		"error":  err.Error(),
	})
}
