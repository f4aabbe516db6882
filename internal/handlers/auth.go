package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
  "github.com/eduxhq/edux-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Email    string `json:"email" binding:"required,email"`
  Password string `json:"password" binding:"required,min=8"`
  Name     string `json:"name" binding:"required"`
  Phone    string `json:"phone"`
  Role     string `json:"role"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  user := &types.User{
    Email:    req.Email,
    Password: req.Password,
    Name:     req.Name,
    Phone:    req.Phone,
    Role:     req.Role,
  }
  if err := ah.authService.RegisterUser(c.Request.Context(), user); err != nil {
    RespondError(c, err)
    return
  }
  user.Password = ""
  RespondOK(c, gin.H{"user": user})
}

type loginRequest struct {
  Email    string `json:"email" binding:"required,email"`
  Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
  })
}

type refreshRequest struct {
  RefreshToken string `json:"refresh_token" binding:"required"`
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var req refreshRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  accessToken, refreshToken, err := ah.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
  })
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}
