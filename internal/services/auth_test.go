package services

import (
  "context"
  "testing"
  "time"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

func newTestAuthService(t *testing.T) AuthService {
  t.Helper()
  database := newTestDB(t)
  log := newTestLogger(t)
  userRepo := repos.NewUserRepo(database, log)
  tokenRepo := repos.NewUserTokenRepo(database, log)
  return NewAuthService(database, log, userRepo, tokenRepo, nil, "test-secret", time.Minute, time.Hour)
}

func TestRegisterLoginAndTokenContext(t *testing.T) {
  authService := newTestAuthService(t)
  ctx := context.Background()

  user := &types.User{
    Email:    "new@example.com",
    Password: "password123",
    Name:     "신규 사용자",
  }
  if err := authService.RegisterUser(ctx, user); err != nil {
    t.Fatalf("register: %v", err)
  }
  if user.Role != types.RoleInstructor {
    t.Fatalf("default role should be instructor, got %q", user.Role)
  }

  accessToken, refreshToken, err := authService.LoginUser(ctx, "new@example.com", "password123")
  if err != nil {
    t.Fatalf("login: %v", err)
  }
  if accessToken == "" || refreshToken == "" {
    t.Fatal("empty tokens")
  }

  authedCtx, err := authService.SetContextFromToken(ctx, accessToken)
  if err != nil {
    t.Fatalf("set context: %v", err)
  }
  rd := requestdata.GetRequestData(authedCtx)
  if rd == nil || rd.UserID != user.ID {
    t.Fatalf("request identity not populated: %+v", rd)
  }
  if rd.Role != types.RoleInstructor {
    t.Fatalf("role not carried into context: %q", rd.Role)
  }
}

func TestRefreshTokenRotatesPair(t *testing.T) {
  authService := newTestAuthService(t)
  ctx := context.Background()
  if err := authService.RegisterUser(ctx, &types.User{Email: "r@example.com", Password: "password123", Name: "r"}); err != nil {
    t.Fatalf("register: %v", err)
  }
  _, refreshToken, err := authService.LoginUser(ctx, "r@example.com", "password123")
  if err != nil {
    t.Fatalf("login: %v", err)
  }

  newAccess, newRefresh, err := authService.RefreshToken(ctx, refreshToken)
  if err != nil {
    t.Fatalf("refresh: %v", err)
  }
  if newAccess == "" || newRefresh == "" || newRefresh == refreshToken {
    t.Fatal("expected a rotated token pair")
  }
  // The old refresh token is revoked on rotation.
  if _, _, err := authService.RefreshToken(ctx, refreshToken); apierr.KindOf(err) != apierr.KindAuth {
    t.Fatalf("expected revoked token to fail, got %v", err)
  }
}

func TestLoginRejectsWrongPassword(t *testing.T) {
  authService := newTestAuthService(t)
  ctx := context.Background()
  if err := authService.RegisterUser(ctx, &types.User{Email: "a@example.com", Password: "password123", Name: "a"}); err != nil {
    t.Fatalf("register: %v", err)
  }
  if _, _, err := authService.LoginUser(ctx, "a@example.com", "wrong"); apierr.KindOf(err) != apierr.KindAuth {
    t.Fatalf("expected auth error, got %v", err)
  }
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
  authService := newTestAuthService(t)
  ctx := context.Background()
  if err := authService.RegisterUser(ctx, &types.User{Email: "dup@example.com", Password: "password123", Name: "a"}); err != nil {
    t.Fatalf("register: %v", err)
  }
  err := authService.RegisterUser(ctx, &types.User{Email: "dup@example.com", Password: "password123", Name: "b"})
  if apierr.KindOf(err) != apierr.KindValidation {
    t.Fatalf("expected validation error, got %v", err)
  }
}

func TestRequirePermissionMatrix(t *testing.T) {
  authService := newTestAuthService(t)

  cases := []struct {
    role       string
    capability string
    allowed    bool
  }{
    {types.RoleAdmin, "user.manage", true},
    {types.RoleAdmin, "course.manage", true},
    {types.RoleManager, "course.manage", true},
    {types.RoleManager, "user.manage", false},
    {types.RoleInstructor, "document.list", true},
    {types.RoleInstructor, "document.manage", true},
    {types.RoleInstructor, "template.manage", false},
    {"guest", "document.list", false},
  }
  for _, tc := range cases {
    ctx := contextWithRole(context.Background(), newFixedUUID(), tc.role)
    err := authService.RequirePermission(ctx, tc.capability)
    if tc.allowed && err != nil {
      t.Fatalf("%s should hold %s: %v", tc.role, tc.capability, err)
    }
    if !tc.allowed && apierr.KindOf(err) != apierr.KindPermission {
      t.Fatalf("%s must not hold %s, got %v", tc.role, tc.capability, err)
    }
  }
}

func TestRequirePermissionWithoutIdentity(t *testing.T) {
  authService := newTestAuthService(t)
  err := authService.RequirePermission(context.Background(), "document.list")
  if apierr.KindOf(err) != apierr.KindAuth {
    t.Fatalf("expected auth error, got %v", err)
  }
}
