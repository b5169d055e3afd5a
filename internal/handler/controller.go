package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"resilience-go/pkg/failure"
	"resilience-go/pkg/httpclient"
	"resilience-go/pkg/logger"
	"resilience-go/pkg/tracker"
)

// Controller exposes the failure log and retry counters over HTTP for
// dashboards and debugging, plus a probe endpoint that exercises the
// resilient client against an arbitrary URL.
type Controller struct {
	tracker  *tracker.Tracker
	registry *prometheus.Registry
	client   *httpclient.Client
	log      *logger.Logger
}

func NewController(tr *tracker.Tracker, registry *prometheus.Registry, client *httpclient.Client) *Controller {
	return &Controller{
		tracker:  tr,
		registry: registry,
		client:   client,
		log:      logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts all routes on app.
func (c *Controller) Register(app *fiber.App) {
	app.Get("/healthz", c.health)
	app.Get("/api/errors", c.listErrors)
	app.Get("/api/errors/attempts/:context", c.getAttempts)
	app.Post("/api/errors/reset", c.reset)

	if c.client != nil {
		app.Get("/api/probe", c.probe)
	}

	if c.registry != nil {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}),
		)
		app.Get("/metrics", func(ctx *fiber.Ctx) error {
			metricsHandler(ctx.Context())
			return nil
		})
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (c *Controller) health(ctx *fiber.Ctx) error {
	return ctx.JSON(healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type errorsResponse struct {
	Count   int              `json:"count"`
	Records []tracker.Record `json:"records"`
}

func (c *Controller) listErrors(ctx *fiber.Ctx) error {
	records := c.tracker.Log()
	return ctx.JSON(errorsResponse{Count: len(records), Records: records})
}

type attemptsResponse struct {
	Context  string `json:"context"`
	Attempts int    `json:"attempts"`
}

func (c *Controller) getAttempts(ctx *fiber.Ctx) error {
	opContext := ctx.Params("context")
	return ctx.JSON(attemptsResponse{
		Context:  opContext,
		Attempts: c.tracker.Attempts(opContext),
	})
}

type probeResponse struct {
	URL      string `json:"url"`
	Context  string `json:"context"`
	OK       bool   `json:"ok"`
	Bytes    int    `json:"bytes,omitempty"`
	Category string `json:"category,omitempty"`
	Action   string `json:"action,omitempty"`
	Message  string `json:"message,omitempty"`
}

// probe fetches the given URL through the retry executor and reports the
// terminal outcome, including the recovery action on failure.
func (c *Controller) probe(ctx *fiber.Ctx) error {
	target := ctx.Query("url")
	if target == "" {
		return fiber.NewError(fiber.StatusBadRequest, "url query parameter is required")
	}
	opContext := ctx.Query("context")
	if opContext == "" {
		opContext = "probe:" + target
	}

	body, err := c.client.Get(ctx.Context(), opContext, target)
	if err != nil {
		f := failure.FromError(err, opContext)
		action := f.Category.TerminalAction()
		return ctx.JSON(probeResponse{
			URL:      target,
			Context:  opContext,
			OK:       false,
			Category: f.Category.String(),
			Action:   action.String(),
			Message:  action.UserMessage(),
		})
	}

	return ctx.JSON(probeResponse{
		URL:     target,
		Context: opContext,
		OK:      true,
		Bytes:   len(body),
	})
}

type resetRequest struct {
	Context string `json:"context"`
}

// reset drops the retry counter for one context, or the whole log and all
// counters when no context is given.
func (c *Controller) reset(ctx *fiber.Ctx) error {
	var req resetRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	if req.Context != "" {
		c.tracker.ResetAttempts(req.Context)
		c.log.WithField("context", req.Context).Info("Retry counter reset")
	} else {
		c.tracker.Clear()
		c.log.Info("Error log cleared")
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
