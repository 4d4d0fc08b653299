package exts

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 128

var idempotencyNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("hypernet.quill.idempotency"))

// ScopeIdempotencyKey rewrites the client key into one bound to the viewer and the route,
// so a replayed response is only ever served back to the request that produced it.
// Must run after Authenticate.
func ScopeIdempotencyKey(c *fiber.Ctx) error {
	header := idempotency.ConfigDefault.KeyHeader
	key := c.Get(header)
	if len(key) == 0 || fiber.IsMethodSafe(c.Method()) {
		return c.Next()
	}
	if len(key) > maxIdempotencyKeyLength {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be at most %d characters", header, maxIdempotencyKeyLength))
	}

	c.Request().Header.Set(header, ScopedIdempotencyKey(GetViewer(c), c.Method(), c.OriginalURL(), key))
	return c.Next()
}

func ScopedIdempotencyKey(viewer *uint, method, path, key string) string {
	var account uint
	if viewer != nil {
		account = *viewer
	}
	data := fmt.Sprintf("%d\n%s\n%s\n%s", account, method, path, key)
	return uuid.NewSHA1(idempotencyNamespace, []byte(data)).String()
}
