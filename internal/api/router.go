package api

import (
	"os"
	"path/filepath"
	"time"

	"stock-ledger/docs"
	"stock-ledger/internal/api/handlers"
	"stock-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// StaticDir overrides the lookup of the web/static directory.
	StaticDir string
	// AccessLog enables fiber's access log on stdout.
	AccessLog bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func SetupRouter(
	txHandler *handlers.TransactionHandler,
	opts RouterOptions,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "stock-ledger",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID(appLogger))
	if opts.AccessLog {
		app.Use(logger.New())
	}

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", handlers.Health)

	webStaticPath := opts.StaticDir
	if webStaticPath == "" {
		webStaticPath = findWebStaticPath(appLogger)
	}
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(webStaticPath, "index.html"))
		})
	} else {
		appLogger.Warn("Web static directory not found, the browser page will not be served")
	}

	api := app.Group("/api")
	api.Post("/transactions", txHandler.AddTransaction)
	api.Get("/transactions", txHandler.ListTransactions)
	api.Get("/summary", txHandler.Summary)
	api.Get("/holdings", txHandler.Holdings)

	return app
}

// findWebStaticPath looks for web/static relative to the working directory.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
