package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cardsapi/internal/service"
)

type enterRequest struct {
	Info string `json:"info"`
}

// enterFallback is returned by GET /enter if the store yields no list at all.
type enterFallback struct {
	Counter int        `json:"counter"`
	Last    *time.Time `json:"last"`
}

// clientIP prefers the raw X-Forwarded-For header, then the socket address.
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		return xff
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// RecordVisit handles POST /enter.
//
// @Summary Record a visit
// @Tags enter
// @Accept json
// @Produce json
// @Param body body enterRequest false "optional client info"
// @Success 200 {object} service.EnterResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /enter [post]
func RecordVisit(svc service.VisitService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req enterRequest
		if err := decodeOptionalJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		res, err := svc.Enter(c.UserContext(), service.EnterInput{
			Info:      req.Info,
			IP:        clientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		if err != nil {
			return internalError(c, log, "record visit", err)
		}
		return c.JSON(res)
	}
}

// ListVisits handles GET /enter.
//
// @Summary List all visit rows
// @Tags enter
// @Produce json
// @Success 200 {array} model.Visit
// @Failure 500 {object} errorPayload
// @Router /enter [get]
func ListVisits(svc service.VisitService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return internalError(c, log, "list visits", err)
		}
		if items == nil {
			return c.JSON(enterFallback{})
		}
		return c.JSON(items)
	}
}

// decodeOptionalJSON decodes the body into v with the app's JSON decoder.
// An empty body leaves v untouched. Content-Type is not checked.
func decodeOptionalJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, v)
}
