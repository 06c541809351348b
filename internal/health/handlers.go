package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handler serves the liveness report. It answers 200 unless the database
// probe fails, so load balancers can gate on the status code alone.
func Handler(db DBPinger, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := Collect(c.Context(), db, rdb)
		code := fiber.StatusOK
		if report.Status == "unavailable" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(report)
	}
}
