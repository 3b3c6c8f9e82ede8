package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"list-scanner/core/config"
	"list-scanner/core/database"
	"list-scanner/core/loader"
	"list-scanner/core/logger"
	"list-scanner/core/middleware/auth"
	"list-scanner/core/middleware/rayid"
	"list-scanner/core/storage"
	"list-scanner/feature/scansession"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scanning HTTP server",
	Long: `Starts the HTTP server exposing the scanning engine: open sessions, scan
tokens, run positional imports, and fetch reconciliation reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the scan database. Unlike optional integrations,
		// the engine cannot run without its store.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to scan database", zap.Error(err))
		}
		logg.Info("Connected to scan database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage (optional, for report uploads)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Object storage unavailable, report uploads disabled", zap.Error(err))
			store = nil
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(scansession.NewFeature(db, store, cfg.Storage.Bucket, cfg.Report.Prefix, logg))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
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

		// Auth (protect the API when a key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
