package http

import (
	"strings"

	"git.solsynth.dev/hypernet/quill/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/quill/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type HTTPApp struct {
	app *fiber.App
}

func NewServer() *HTTPApp {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Hypernet.Quill",
		AppName:               "Hypernet.Quill",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             16 * 1024 * 1024,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ErrorHandler:          exts.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodHead,
			fiber.MethodOptions,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodPatch,
		}, ","),
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
	}))

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(exts.Authenticate)

	app.Use(exts.ScopeIdempotencyKey)
	app.Use(idempotency.New(idempotency.Config{
		Next: func(c *fiber.Ctx) bool {
			return fiber.IsMethodSafe(c.Method()) || len(c.Get(idempotency.ConfigDefault.KeyHeader)) == 0
		},
		KeyHeaderValidate: func(key string) error {
			if len(key) != 36 {
				return fiber.NewError(fiber.StatusBadRequest, "invalid idempotency key")
			}
			return nil
		},
	}))

	api.MapAPIs(app, "/api")

	return &HTTPApp{app}
}

// App exposes the fiber application for in-process requests.
func (v *HTTPApp) App() *fiber.App {
	return v.app
}

func (v *HTTPApp) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *HTTPApp) Shutdown() error {
	return v.app.Shutdown()
}
