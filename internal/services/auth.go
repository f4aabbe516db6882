package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

// Role capability table. The permission check is intentionally coarse: a
// capability string either is or is not granted to a role.
var rolePermissions = map[string]map[string]bool{
  types.RoleAdmin: {
    "course.manage":     true,
    "instructor.manage": true,
    "template.manage":   true,
    "document.list":     true,
    "document.manage":   true,
    "user.manage":       true,
  },
  types.RoleManager: {
    "course.manage":     true,
    "instructor.manage": true,
    "template.manage":   true,
    "document.list":     true,
    "document.manage":   true,
  },
  types.RoleInstructor: {
    "document.list":   true,
    "document.manage": true,
  },
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  RequirePermission(ctx context.Context, capability string) error
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  avatarService AvatarService
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  avatarService AvatarService,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    avatarService: avatarService,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  if user == nil || user.Email == "" || user.Password == "" {
    return apierr.Validation(apierr.MsgQueryFailed)
  }
  exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("check email: %w", err)
  }
  if exists {
    return apierr.Validation("이미 등록된 이메일입니다.")
  }
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("hash password: %w", err)
  }
  user.Password = string(hashed)
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    if user.Role == "" {
      user.Role = types.RoleInstructor
    }
    user.IsActive = true
    if as.avatarService != nil {
      if aErr := as.avatarService.CreateUserAvatar(ctx, user); aErr != nil {
        as.log.Warn("avatar generation failed, continuing without one", "error", aErr)
      }
    }
    if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
      return fmt.Errorf("create user: %w", cErr)
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return "", "", fmt.Errorf("load user by email: %w", err)
  }
  if len(users) == 0 || users[0] == nil {
    return "", "", apierr.Auth(apierr.MsgTokenInvalid)
  }
  user := users[0]
  if !user.IsActive {
    return "", "", apierr.Auth(apierr.MsgUserInactive)
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", "", apierr.Auth(apierr.MsgTokenInvalid)
  }

  var accessToken, refreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := &types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); ctErr != nil {
      return fmt.Errorf("create user token: %w", ctErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair. The
// old pair is revoked in the same transaction.
func (as *authService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
  tokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, nil, []string{refreshToken})
  if err != nil {
    return "", "", fmt.Errorf("load refresh token: %w", err)
  }
  if len(tokens) == 0 || tokens[0] == nil {
    return "", "", apierr.Auth(apierr.MsgTokenInvalid)
  }
  oldToken := tokens[0]
  if time.Now().After(oldToken.ExpiresAt) {
    return "", "", apierr.Auth(apierr.MsgTokenInvalid)
  }
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{oldToken.UserID})
  if err != nil {
    return "", "", fmt.Errorf("load user for refresh: %w", err)
  }
  if len(users) == 0 || users[0] == nil || !users[0].IsActive {
    return "", "", apierr.Auth(apierr.MsgUserInactive)
  }
  user := users[0]

  var accessToken, newRefreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    userToken := &types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); ctErr != nil {
      return fmt.Errorf("create user token: %w", ctErr)
    }
    if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{oldToken.ID}); dErr != nil {
      return fmt.Errorf("revoke old token: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.TokenString == "" {
    return apierr.Auth(apierr.MsgTokenInvalid)
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if ftErr != nil {
      return fmt.Errorf("find user token: %w", ftErr)
    }
    ids := make([]uuid.UUID, 0, len(foundTokens))
    for _, t := range foundTokens {
      if t != nil {
        ids = append(ids, t.ID)
      }
    }
    if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, ids); dErr != nil {
      return fmt.Errorf("delete user token: %w", dErr)
    }
    return nil
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken resolves a bearer token to an active-user identity and
// stores it in the request context. Inactive or deleted users fail here,
// before any handler logic runs.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, apierr.New(apierr.KindAuth, apierr.MsgTokenInvalid, err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, apierr.Auth(apierr.MsgTokenInvalid)
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, apierr.New(apierr.KindAuth, apierr.MsgTokenInvalid, err)
  }
  users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if uErr != nil {
    return ctx, fmt.Errorf("load user for token: %w", uErr)
  }
  if len(users) == 0 || users[0] == nil || !users[0].IsActive {
    return ctx, apierr.Auth(apierr.MsgUserInactive)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    Role:        users[0].Role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) RequirePermission(ctx context.Context, capability string) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return apierr.Auth(apierr.MsgTokenInvalid)
  }
  if !rolePermissions[rd.Role][capability] {
    as.log.Warn("permission denied", "capability", capability, "role", rd.Role)
    return apierr.Permission(apierr.MsgNoPermission)
  }
  return nil
}
