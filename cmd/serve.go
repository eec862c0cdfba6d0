package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"mod-sync/core/loader"
	"mod-sync/core/logger"
	"mod-sync/core/middleware/auth"
	"mod-sync/core/middleware/rayid"
	"mod-sync/feature/integrity"
	"mod-sync/feature/updates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mod-sync/docs/swagger"
)

// @title mod-sync API
// @version 1.0
// @description API for checking, downloading and verifying Factorio mods.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mod-sync HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		logg := svc.logger
		defer logg.Sync()

		app, err := newServer(svc)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", svc.cfg.Server.Port))
			if err := app.Listen(svc.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(30 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

// newServer builds the fiber app with middleware and every feature mounted.
func newServer(svc *services) (*fiber.App, error) {
	logg := svc.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(svc.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:          time.Duration(svc.cfg.Server.WriteTimeoutSeconds) * time.Second,
	})

	mgr := loader.NewManager()
	mgr.Register(updates.NewFeature(svc.updates))
	mgr.Register(integrity.NewFeature(svc.integrity))

	// RayID first so every log line below carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		ApiKey: svc.cfg.Server.ApiKey,
		Skip:   []string{"/health", "/metrics"},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if svc.cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(svc.metrics.Handler()))
	}

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
