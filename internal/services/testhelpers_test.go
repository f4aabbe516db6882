package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/render"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := database.DB()
  if err != nil {
    t.Fatalf("unwrap sql db: %v", err)
  }
  // one in-memory database per test; a second connection would see nothing
  sqlDB.SetMaxOpenConns(1)
  if err := database.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Course{},
    &types.Lecture{},
    &types.Schedule{},
    &types.Instructor{},
    &types.InstructorProfile{},
    &types.RenderJob{},
    &types.UserDocument{},
    &types.Template{},
    &types.AppSetting{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return database
}

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  return log
}

type brochureFixture struct {
  db     *gorm.DB
  svc    *brochureService
  userID uuid.UUID
}

func newBrochureFixture(t *testing.T) *brochureFixture {
  t.Helper()
  database := newTestDB(t)
  log := newTestLogger(t)

  userRepo := repos.NewUserRepo(database, log)
  tokenRepo := repos.NewUserTokenRepo(database, log)
  authService := NewAuthService(database, log, userRepo, tokenRepo, nil, "test-secret", time.Minute, time.Hour)

  svc := NewBrochureService(
    database, log, authService,
    repos.NewCourseRepo(database, log),
    repos.NewInstructorRepo(database, log),
    repos.NewInstructorProfileRepo(database, log),
    repos.NewUserDocumentRepo(database, log),
    repos.NewRenderJobRepo(database, log),
    repos.NewTemplateRepo(database, log),
    repos.NewAppSettingRepo(database, log),
    render.NewEngine(),
    nil,
  ).(*brochureService)

  now := time.Now()
  user := &types.User{
    ID:        uuid.New(),
    Email:     "admin@example.com",
    Password:  "irrelevant",
    Name:      "관리자",
    Role:      types.RoleAdmin,
    IsActive:  true,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := database.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return &brochureFixture{db: database, svc: svc, userID: user.ID}
}

func (f *brochureFixture) ctx() context.Context {
  return contextWithRole(context.Background(), f.userID, types.RoleAdmin)
}

func newFixedUUID() uuid.UUID {
  return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func contextWithRole(ctx context.Context, userID uuid.UUID, role string) context.Context {
  return requestdata.WithRequestData(ctx, &requestdata.RequestData{
    UserID: userID,
    Role:   role,
  })
}

func (f *brochureFixture) seedCourse(t *testing.T, title string) *types.Course {
  t.Helper()
  now := time.Now()
  course := &types.Course{
    ID:        uuid.New(),
    Title:     title,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := f.db.Create(course).Error; err != nil {
    t.Fatalf("seed course: %v", err)
  }
  return course
}

func (f *brochureFixture) seedInstructor(t *testing.T, name string, userID *uuid.UUID) *types.Instructor {
  t.Helper()
  now := time.Now()
  instructor := &types.Instructor{
    ID:        uuid.New(),
    UserID:    userID,
    Name:      name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := f.db.Create(instructor).Error; err != nil {
    t.Fatalf("seed instructor: %v", err)
  }
  return instructor
}

func (f *brochureFixture) seedProfile(t *testing.T, userID uuid.UUID, displayName string) *types.InstructorProfile {
  t.Helper()
  now := time.Now()
  profile := &types.InstructorProfile{
    ID:          uuid.New(),
    UserID:      userID,
    DisplayName: displayName,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := f.db.Create(profile).Error; err != nil {
    t.Fatalf("seed profile: %v", err)
  }
  return profile
}

func (f *brochureFixture) seedProfileUser(t *testing.T, email string) *types.User {
  t.Helper()
  now := time.Now()
  user := &types.User{
    ID:        uuid.New(),
    Email:     email,
    Password:  "irrelevant",
    Name:      email,
    Role:      types.RoleInstructor,
    IsActive:  true,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := f.db.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return user
}

// seedDocument creates a user document plus its render job in the given
// status. createdAt controls which document counts as newest for a target.
func (f *brochureFixture) seedDocument(t *testing.T, targetType, targetID, pdfURL, status string, createdAt time.Time) *types.UserDocument {
  t.Helper()
  job := &types.RenderJob{
    ID:         uuid.New(),
    Status:     status,
    TargetType: targetType,
    TargetID:   targetID,
    CreatedAt:  createdAt,
    UpdatedAt:  createdAt,
  }
  if err := f.db.Create(job).Error; err != nil {
    t.Fatalf("seed render job: %v", err)
  }
  doc := &types.UserDocument{
    ID:          uuid.New(),
    UserID:      f.userID,
    TargetType:  targetType,
    TargetID:    targetID,
    PdfURL:      pdfURL,
    IsActive:    true,
    RenderJobID: &job.ID,
    CreatedAt:   createdAt,
    UpdatedAt:   createdAt,
  }
  if err := f.db.Create(doc).Error; err != nil {
    t.Fatalf("seed document: %v", err)
  }
  return doc
}

func (f *brochureFixture) seedTemplate(t *testing.T, templateType, name, html, css string) *types.Template {
  t.Helper()
  now := time.Now()
  template := &types.Template{
    ID:        uuid.New(),
    Type:      templateType,
    Name:      name,
    HTML:      html,
    CSS:       css,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := f.db.Create(template).Error; err != nil {
    t.Fatalf("seed template: %v", err)
  }
  return template
}
