package main

import (
  "context"
  "os"
  "time"

  "github.com/eduxhq/edux-backend/internal/app"
  "github.com/eduxhq/edux-backend/internal/db"
  "github.com/eduxhq/edux-backend/internal/handlers"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/notifier"
  "github.com/eduxhq/edux-backend/internal/observability"
  "github.com/eduxhq/edux-backend/internal/render"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/server"
  "github.com/eduxhq/edux-backend/internal/services"
  "github.com/eduxhq/edux-backend/internal/utils"
)

func main() {
  log, err := logger.New(utils.GetEnv("LOG_MODE", "dev", nil))
  if err != nil {
    os.Exit(1)
  }

  cfg := app.LoadConfig(log)
  if cfg.JWTSecretKey == "" {
    log.Fatal("JWT_SECRET_KEY is required")
  }

  ctx := context.Background()
  otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
    ServiceName: "edux-backend",
    Environment: utils.GetEnv("ENVIRONMENT", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
      defer cancel()
      if sErr := otelShutdown(shutdownCtx); sErr != nil {
        log.Warn("otel shutdown failed", "error", sErr)
      }
    }()
  }

  pg, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("postgres init failed", "error", err)
  }
  if err := pg.AutoMigrateAll(); err != nil {
    log.Fatal("postgres migration failed", "error", err)
  }
  database := pg.DB()

  bus, busErr := notifier.NewRedisBus(log)
  if busErr != nil {
    log.Warn("notifier unavailable, events will not be published", "error", busErr)
    bus = nil
  } else {
    defer func() { _ = bus.Close() }()
  }

  avatarService, avErr := services.NewAvatarService(log)
  if avErr != nil {
    log.Warn("avatar service unavailable, users get no generated avatar", "error", avErr)
    avatarService = nil
  }

  userRepo := repos.NewUserRepo(database, log)
  userTokenRepo := repos.NewUserTokenRepo(database, log)
  courseRepo := repos.NewCourseRepo(database, log)
  instructorRepo := repos.NewInstructorRepo(database, log)
  profileRepo := repos.NewInstructorProfileRepo(database, log)
  docRepo := repos.NewUserDocumentRepo(database, log)
  renderJobRepo := repos.NewRenderJobRepo(database, log)
  templateRepo := repos.NewTemplateRepo(database, log)
  settingRepo := repos.NewAppSettingRepo(database, log)

  engine := render.NewEngine()

  authService := services.NewAuthService(database, log, userRepo, userTokenRepo, avatarService, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
  userService := services.NewUserService(database, log, userRepo)
  courseService := services.NewCourseService(database, log, authService, courseRepo, instructorRepo)
  instructorService := services.NewInstructorService(database, log, authService, instructorRepo, profileRepo)
  scheduleService := services.NewScheduleService(database, log, authService, courseRepo)
  templateService := services.NewTemplateService(database, log, authService, templateRepo)
  documentService := services.NewDocumentService(database, log, authService, docRepo, renderJobRepo, bus)
  brochureService := services.NewBrochureService(
    database, log, authService,
    courseRepo, instructorRepo, profileRepo,
    docRepo, renderJobRepo, templateRepo, settingRepo,
    engine, bus,
  )

  router := server.NewRouter(authService, server.Handlers{
    Auth:        handlers.NewAuthHandler(authService),
    User:        handlers.NewUserHandler(userService),
    Course:      handlers.NewCourseHandler(courseService, scheduleService),
    Instructor:  handlers.NewInstructorHandler(instructorService),
    Template:    handlers.NewTemplateHandler(templateService),
    Document:    handlers.NewDocumentHandler(documentService),
    Brochure:    handlers.NewBrochureHandler(brochureService),
    Healthcheck: handlers.NewHealthcheckHandler(database),
  })

  log.Info("Starting server...", "port", cfg.Port)
  if err := router.Run(":" + cfg.Port); err != nil {
    log.Fatal("server exited", "error", err)
  }
}
