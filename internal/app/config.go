package app

import (
  "time"

  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/utils"
)

type Config struct {
  Port            string
  JWTSecretKey    string
  AccessTokenTTL  time.Duration
  RefreshTokenTTL time.Duration
}

func LoadConfig(log *logger.Logger) *Config {
  accessMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 30, log)
  refreshHours := utils.GetEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 720, log)
  return &Config{
    Port:            utils.GetEnv("PORT", "8080", log),
    JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "", log),
    AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
    RefreshTokenTTL: time.Duration(refreshHours) * time.Hour,
  }
}
