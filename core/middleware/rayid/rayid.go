package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the response header carrying the request's RayID.
const Header = "X-Ray-Id"

// New returns a middleware that assigns a unique RayID to every request.
// The ID is stored in the request locals under "ray_id" and echoed in the
// response headers so clients can reference it in bug reports.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(Header, rid)

		return c.Next()
	}
}
