package httpapi

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/view"
	"github.com/i474232898/weather-now/internal/weather"
)

// SessionCookie carries the page session id.
const SessionCookie = "weather_now_session"

var validate = validator.New()

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Deps are the collaborators the routes need.
type Deps struct {
	// Weather answers the stateless lookup endpoint.
	Weather  weather.Provider
	Sessions *store.MemoryStore
	View     view.Options
}

// NewApp builds the Fiber app with the shared middleware, health endpoint and routes.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-now",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-now",
		})
	})

	RegisterRoutes(app, d)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	h := &handlers{deps: d}

	app.Get("/", h.index)
	app.Post("/", h.submitForm)

	v1 := app.Group("/api/v1")
	v1.Get("/weather/current", h.currentWeather)
	v1.Get("/session", h.sessionPage)
	v1.Put("/session/query", h.updateQuery)
	v1.Post("/session/submit", h.submit)
}

type handlers struct {
	deps Deps
}

// lookupQuery holds query parameters for the stateless lookup.
type lookupQuery struct {
	Q string `validate:"required"`
}

// queryBody is the body of PUT /session/query. An empty string is a valid query.
type queryBody struct {
	Query *string `json:"query" validate:"required"`
}

func (h *handlers) session(c *fiber.Ctx) (*store.Session, error) {
	if h.deps.Sessions == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "sessions are not configured")
	}
	sess, created := h.deps.Sessions.GetOrCreate(c.Cookies(SessionCookie))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sess, nil
}

func (h *handlers) page(sess *store.Session) view.Page {
	return view.Render(sess.Controller.Snapshot(), h.deps.View)
}

// GET /
func (h *handlers) index(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = indexTemplate.Execute(&buf, struct {
		Page      view.Page
		InputHint string
	}{
		Page:      h.page(sess),
		InputHint: view.InputHint,
	})
	if err != nil {
		return errors.Wrap(err, "render index")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// POST / with form field q. Pressing Enter in the input submits the form.
func (h *handlers) submitForm(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	ctrl := sess.Controller
	if !ctrl.Loading() {
		ctrl.UpdateQuery(c.FormValue("q"))
		startLookup(ctrl)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// startLookup accepts a submission and resolves it in the background, so the
// submitting page renders the loading state until the fetch settles.
func startLookup(ctrl *controller.Controller) bool {
	t, ok := ctrl.Begin()
	if !ok {
		return false
	}
	go ctrl.Resolve(context.Background(), t)
	return true
}

// GET /api/v1/weather/current?q=<city>
func (h *handlers) currentWeather(c *fiber.Ctx) error {
	req := lookupQuery{Q: c.Query("q")}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Q) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q must not be blank")
	}
	if h.deps.Weather == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather provider is not configured")
	}

	reading, err := h.deps.Weather.Fetch(c.UserContext(), req.Q)
	if err != nil {
		kind := weather.KindOf(err)
		return c.Status(statusForKind(kind)).JSON(fiber.Map{
			"error":   true,
			"kind":    kind,
			"message": kind.Message(),
		})
	}
	return c.JSON(reading)
}

// GET /api/v1/session
func (h *handlers) sessionPage(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(h.page(sess))
}

// PUT /api/v1/session/query
func (h *handlers) updateQuery(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var body queryBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess.Controller.UpdateQuery(*body.Query)
	return c.JSON(h.page(sess))
}

// POST /api/v1/session/submit. The returned page is Loading when submitted is true.
func (h *handlers) submit(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	submitted := startLookup(sess.Controller)
	return c.JSON(fiber.Map{
		"submitted": submitted,
		"page":      h.page(sess),
	})
}

func statusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindNotFound:
		return fiber.StatusNotFound
	case weather.KindNetwork:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}
