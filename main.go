package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"paperdesk/admin"
	"paperdesk/auth"
	"paperdesk/config"
	"paperdesk/handlers/api"
	"paperdesk/middleware"
	"paperdesk/storage"
	"paperdesk/submission"
	"paperdesk/upload"
	"paperdesk/utils"
)

func main() {
	utils.Log.Info("Initializing PaperDesk...")

	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		return
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		utils.Log.Error("Failed to open store: %v", err)
		return
	}
	defer store.Close()

	authMgr := auth.NewManager(store)
	adminMgr := auth.NewAdminManager(store)
	if err := adminMgr.EnsureBootstrap(); err != nil {
		utils.Log.Error("Failed to bootstrap admin account: %v", err)
		return
	}

	var uploader upload.Uploader = upload.StubUploader{}
	if cfg.Upload.Enabled {
		s3Uploader, err := upload.NewS3Uploader(context.Background(), upload.S3Config{
			Endpoint:  cfg.Upload.Endpoint,
			Region:    cfg.Upload.Region,
			Bucket:    cfg.Upload.Bucket,
			AccessKey: cfg.Upload.AccessKey,
			SecretKey: cfg.Upload.SecretKey,
			BaseURL:   cfg.Upload.BaseURL,
		})
		if err != nil {
			utils.Log.Error("Failed to configure uploads, falling back to stub: %v", err)
		} else {
			uploader = s3Uploader
		}
	}

	subService := submission.NewService(store, authMgr, uploader)
	adminService := admin.NewService(store, adminMgr)

	app := fiber.New(fiber.Config{
		BodyLimit: submission.MaxFileSize + 1024*1024, // manuscript plus form overhead
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	app.Use(middleware.RateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second))

	authHandler := api.NewAuthHandler(cfg, authMgr)
	subHandler := api.NewSubmissionHandler(subService)
	adminHandler := api.NewAdminHandler(cfg, adminMgr, adminService)

	// Public routes
	app.Get("/api/csrf", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"token": middleware.GenerateCSRFToken(c)})
	})
	app.Post("/api/register", authHandler.Register)
	app.Post("/api/login", authHandler.Login)
	app.Post("/api/logout", authHandler.Logout)
	app.Post("/api/admin/login", adminHandler.Login)
	app.Post("/api/admin/logout", adminHandler.Logout)

	// Admin routes. Registered before the author group: the author
	// group's /api prefix would otherwise shadow /api/admin.
	adm := app.Group("/api/admin", middleware.RequireAdmin(adminMgr, cfg.JWT.Secret), middleware.CSRFProtection())
	adm.Post("/credentials", adminHandler.ChangeCredentials)
	adm.Get("/submissions", adminHandler.Submissions)
	adm.Put("/submissions/:id/status", adminHandler.UpdateStatus)
	adm.Put("/submissions/:id/payment", adminHandler.UpdatePayment)
	adm.Delete("/submissions/:id", adminHandler.DeleteSubmission)
	adm.Get("/users", adminHandler.Users)
	adm.Delete("/users/:id", adminHandler.DeleteUser)
	adm.Get("/payments", adminHandler.Payments)
	adm.Get("/statistics", adminHandler.Statistics)
	adm.Get("/search", adminHandler.Search)
	adm.Get("/logs", adminHandler.Logs)
	adm.Get("/export/submissions", adminHandler.ExportSubmissions)
	adm.Get("/export/payments", adminHandler.ExportPayments)
	adm.Get("/export/users", adminHandler.ExportUsers)

	// Author routes
	user := app.Group("/api", middleware.RequireUser(authMgr, cfg.JWT.Secret), middleware.CSRFProtection())
	user.Get("/me", authHandler.Me)
	user.Post("/password", authHandler.ChangePassword)
	user.Post("/submissions", subHandler.Create)
	user.Get("/submissions", subHandler.List)
	user.Get("/submissions/stats", subHandler.Stats)
	user.Get("/submissions/:id", subHandler.Get)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Error starting server: %v", err)
	}
}
