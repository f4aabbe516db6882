package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

type InstructorInput struct {
  UserID      *uuid.UUID
  Name        string
  Title       string
  Bio         string
  Affiliation string
  Email       string
  Phone       string
  Links       []byte
}

type InstructorService interface {
  CreateInstructor(ctx context.Context, input InstructorInput) (*types.Instructor, error)
  UpdateInstructor(ctx context.Context, instructorID uuid.UUID, input InstructorInput) (*types.Instructor, error)
  DeleteInstructor(ctx context.Context, instructorID uuid.UUID) error
  GetInstructor(ctx context.Context, instructorID uuid.UUID) (*types.Instructor, error)
  ListInstructors(ctx context.Context, offset, limit int) ([]*types.Instructor, error)
  UpsertMyProfile(ctx context.Context, input ProfileInput) (*types.InstructorProfile, error)
  GetMyProfile(ctx context.Context) (*types.InstructorProfile, error)
}

type ProfileInput struct {
  DisplayName string
  Title       string
  Bio         string
  Affiliation string
  Links       []byte
}

type instructorService struct {
  db          *gorm.DB
  log         *logger.Logger
  authService AuthService
  instRepo    repos.InstructorRepo
  profileRepo repos.InstructorProfileRepo
}

func NewInstructorService(
  db *gorm.DB,
  log *logger.Logger,
  authService AuthService,
  instRepo repos.InstructorRepo,
  profileRepo repos.InstructorProfileRepo,
) InstructorService {
  serviceLog := log.With("service", "InstructorService")
  return &instructorService{
    db:          db,
    log:         serviceLog,
    authService: authService,
    instRepo:    instRepo,
    profileRepo: profileRepo,
  }
}

func (is *instructorService) CreateInstructor(ctx context.Context, input InstructorInput) (*types.Instructor, error) {
  if err := is.authService.RequirePermission(ctx, "instructor.manage"); err != nil {
    return nil, err
  }
  if input.Name == "" {
    return nil, apierr.Validation("강사 이름은 필수입니다.")
  }
  now := time.Now()
  instructor := &types.Instructor{
    ID:          uuid.New(),
    UserID:      input.UserID,
    Name:        input.Name,
    Title:       input.Title,
    Bio:         input.Bio,
    Affiliation: input.Affiliation,
    Email:       input.Email,
    Phone:       input.Phone,
    Links:       input.Links,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if _, err := is.instRepo.Create(ctx, nil, []*types.Instructor{instructor}); err != nil {
    is.log.Error("CreateInstructor failed", "error", err)
    return nil, fmt.Errorf("create instructor: %w", err)
  }
  return instructor, nil
}

func (is *instructorService) UpdateInstructor(ctx context.Context, instructorID uuid.UUID, input InstructorInput) (*types.Instructor, error) {
  if err := is.authService.RequirePermission(ctx, "instructor.manage"); err != nil {
    return nil, err
  }
  instructors, err := is.instRepo.GetByIDs(ctx, nil, []uuid.UUID{instructorID})
  if err != nil {
    return nil, fmt.Errorf("load instructor: %w", err)
  }
  if len(instructors) == 0 || instructors[0] == nil {
    return nil, apierr.NotFound(apierr.MsgInstructorNotFound)
  }
  instructor := instructors[0]
  instructor.Name = input.Name
  instructor.Title = input.Title
  instructor.Bio = input.Bio
  instructor.Affiliation = input.Affiliation
  instructor.Email = input.Email
  instructor.Phone = input.Phone
  if input.Links != nil {
    instructor.Links = input.Links
  }
  if input.UserID != nil {
    instructor.UserID = input.UserID
  }
  instructor.UpdatedAt = time.Now()
  if err := is.instRepo.Update(ctx, nil, instructor); err != nil {
    return nil, fmt.Errorf("update instructor: %w", err)
  }
  return instructor, nil
}

func (is *instructorService) DeleteInstructor(ctx context.Context, instructorID uuid.UUID) error {
  if err := is.authService.RequirePermission(ctx, "instructor.manage"); err != nil {
    return err
  }
  return is.instRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{instructorID})
}

func (is *instructorService) GetInstructor(ctx context.Context, instructorID uuid.UUID) (*types.Instructor, error) {
  instructors, err := is.instRepo.GetByIDs(ctx, nil, []uuid.UUID{instructorID})
  if err != nil {
    return nil, fmt.Errorf("get instructor: %w", err)
  }
  if len(instructors) == 0 || instructors[0] == nil {
    return nil, apierr.NotFound(apierr.MsgInstructorNotFound)
  }
  return instructors[0], nil
}

func (is *instructorService) ListInstructors(ctx context.Context, offset, limit int) ([]*types.Instructor, error) {
  instructors, err := is.instRepo.List(ctx, nil, offset, limit)
  if err != nil {
    return nil, fmt.Errorf("list instructors: %w", err)
  }
  return instructors, nil
}

// UpsertMyProfile writes the caller's self-service profile. One profile per
// user; repeated calls overwrite.
func (is *instructorService) UpsertMyProfile(ctx context.Context, input ProfileInput) (*types.InstructorProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Auth(apierr.MsgTokenInvalid)
  }
  if input.DisplayName == "" {
    return nil, apierr.Validation("표시 이름은 필수입니다.")
  }
  now := time.Now()
  profile := &types.InstructorProfile{
    ID:          uuid.New(),
    UserID:      rd.UserID,
    DisplayName: input.DisplayName,
    Title:       input.Title,
    Bio:         input.Bio,
    Affiliation: input.Affiliation,
    Links:       input.Links,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := is.profileRepo.Upsert(ctx, nil, profile); err != nil {
    return nil, fmt.Errorf("upsert profile: %w", err)
  }
  profiles, err := is.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil || len(profiles) == 0 {
    return profile, nil
  }
  return profiles[0], nil
}

func (is *instructorService) GetMyProfile(ctx context.Context) (*types.InstructorProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Auth(apierr.MsgTokenInvalid)
  }
  profiles, err := is.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("get profile: %w", err)
  }
  if len(profiles) == 0 || profiles[0] == nil {
    return nil, apierr.NotFound("프로필을 찾을 수 없습니다.")
  }
  return profiles[0], nil
}
