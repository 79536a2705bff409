package middleware

import (
	"strconv"
	"time"

	infraprom "github.com/filegram/panel/internal/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

// Metrics observes request counts and latency. The route pattern is used
// rather than the raw path so query-heavy endpoints stay one series.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		infraprom.RequestsTotal.WithLabelValues(method, route, status).Inc()
		infraprom.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
