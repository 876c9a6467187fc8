package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cardsapi/internal/logger"
)

// Logger logs each HTTP request as one JSON line on log.
// Fields: request_id, method, path, status, latency (ms), ts, plus
// trace_id/span_id when the request is traced.
func Logger(log zerolog.Logger) fiber.Handler {
	return accessLog(log, time.UTC)
}

// LoggerWithWriter is Logger writing bare JSON lines to w, with ts rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return accessLog(zerolog.New(w), loc)
}

func accessLog(log zerolog.Logger, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		rid, _ := c.Locals(RequestIDLocalKey).(string)

		l := logger.WithTrace(c.UserContext(), log)
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Str("ts", time.Now().In(loc).Format(time.RFC3339Nano)).
			Send()

		return err
	}
}

// statusOf resolves the final status. Errors returned by the chain have not
// reached the global ErrorHandler yet, so they are mapped here.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
