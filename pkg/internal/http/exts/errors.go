package exts

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

var errorKinds = []struct {
	Err    error
	Status int
	Kind   string
}{
	{services.ErrNotFound, fiber.StatusNotFound, "not_found"},
	{services.ErrInvalidOperation, fiber.StatusBadRequest, "invalid_operation"},
	{services.ErrForbidden, fiber.StatusForbidden, "forbidden"},
	{services.ErrUnauthorized, fiber.StatusUnauthorized, "unauthorized"},
	{services.ErrStoreFailure, fiber.StatusInternalServerError, "store_failure"},
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := "internal"
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		kind = strings.ToLower(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
		message = fe.Message
	} else {
		for _, item := range errorKinds {
			if errors.Is(err, item.Err) {
				status = item.Status
				kind = item.Kind
				message = strings.TrimPrefix(err.Error(), item.Err.Error()+": ")
				break
			}
		}
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   kind,
	})
}
