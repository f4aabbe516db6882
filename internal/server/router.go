package server

import (
  "time"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/eduxhq/edux-backend/internal/handlers"
  "github.com/eduxhq/edux-backend/internal/middleware"
  "github.com/eduxhq/edux-backend/internal/services"
  "github.com/eduxhq/edux-backend/internal/utils"
)

type Handlers struct {
  Auth        *handlers.AuthHandler
  User        *handlers.UserHandler
  Course      *handlers.CourseHandler
  Instructor  *handlers.InstructorHandler
  Template    *handlers.TemplateHandler
  Document    *handlers.DocumentHandler
  Brochure    *handlers.BrochureHandler
  Healthcheck *handlers.HealthcheckHandler
}

func NewRouter(authService services.AuthService, h Handlers) *gin.Engine {
  if utils.GetEnv("GIN_MODE", "debug", nil) == "release" {
    gin.SetMode(gin.ReleaseMode)
  }
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(otelgin.Middleware("edux-backend"))
  router.Use(cors.New(cors.Config{
    AllowOrigins:     []string{utils.GetEnv("CORS_ORIGIN", "http://localhost:3000", nil)},
    AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type"},
    AllowCredentials: true,
    MaxAge:           12 * time.Hour,
  }))

  router.GET("/healthcheck", h.Healthcheck.Healthcheck)
  router.POST("/auth/register", h.Auth.Register)
  router.POST("/auth/login", h.Auth.Login)
  router.POST("/auth/refresh", h.Auth.Refresh)

  authed := router.Group("/", middleware.RequireAuth(authService))
  {
    authed.POST("/auth/logout", h.Auth.Logout)
    authed.GET("/me", h.User.GetMe)

    authed.POST("/courses", h.Course.Create)
    authed.PUT("/courses/:id", h.Course.Update)
    authed.DELETE("/courses/:id", h.Course.Delete)
    authed.GET("/courses/:id", h.Course.Get)
    authed.GET("/courses", h.Course.List)
    authed.POST("/schedules", h.Course.CreateSchedule)
    authed.DELETE("/schedules/:id", h.Course.DeleteSchedule)

    authed.POST("/instructors", h.Instructor.Create)
    authed.PUT("/instructors/:id", h.Instructor.Update)
    authed.DELETE("/instructors/:id", h.Instructor.Delete)
    authed.GET("/instructors/:id", h.Instructor.Get)
    authed.GET("/instructors", h.Instructor.List)
    authed.PUT("/me/profile", h.Instructor.UpsertMyProfile)
    authed.GET("/me/profile", h.Instructor.GetMyProfile)

    authed.POST("/templates", h.Template.Create)
    authed.PUT("/templates/:id", h.Template.Update)
    authed.DELETE("/templates/:id", h.Template.Delete)
    authed.GET("/templates", h.Template.List)

    authed.GET("/my-documents", h.Document.ListMine)
    authed.POST("/my-documents/deactivate", h.Document.Deactivate)
    authed.POST("/render-jobs", h.Document.CreateRenderJob)

    authed.POST("/tools/brochure.create", h.Brochure.CreateTool)
    authed.GET("/brochure/:id", h.Brochure.GetPackagePage)
    authed.GET("/brochure-packages/:id", h.Brochure.GetPackage)
  }

  return router
}
