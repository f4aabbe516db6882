package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

// RequireAuth resolves the bearer token into a request identity before any
// handler runs. Requests without a valid token never reach the handlers.
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
  return func(c *gin.Context) {
    header := c.GetHeader("Authorization")
    if !strings.HasPrefix(header, "Bearer ") {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.MsgTokenInvalid})
      return
    }
    tokenString := strings.TrimPrefix(header, "Bearer ")
    ctx, err := authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.UserMessage(err)})
      return
    }
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}
