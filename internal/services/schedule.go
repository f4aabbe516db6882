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
  "github.com/eduxhq/edux-backend/internal/types"
)

type ScheduleInput struct {
  CourseID     uuid.UUID
  InstructorID *uuid.UUID
  StartsAt     time.Time
  EndsAt       time.Time
  Location     string
}

type ScheduleService interface {
  CreateSchedule(ctx context.Context, input ScheduleInput) (*types.Schedule, error)
  DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error
}

type scheduleService struct {
  db          *gorm.DB
  log         *logger.Logger
  authService AuthService
  courseRepo  repos.CourseRepo
}

func NewScheduleService(db *gorm.DB, log *logger.Logger, authService AuthService, courseRepo repos.CourseRepo) ScheduleService {
  serviceLog := log.With("service", "ScheduleService")
  return &scheduleService{db: db, log: serviceLog, authService: authService, courseRepo: courseRepo}
}

func (ss *scheduleService) CreateSchedule(ctx context.Context, input ScheduleInput) (*types.Schedule, error) {
  if err := ss.authService.RequirePermission(ctx, "course.manage"); err != nil {
    return nil, err
  }
  courses, err := ss.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CourseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil {
    return nil, apierr.NotFound(apierr.MsgCourseNotFound)
  }
  if !input.EndsAt.After(input.StartsAt) {
    return nil, apierr.Validation("일정 종료 시각은 시작 시각 이후여야 합니다.")
  }
  now := time.Now()
  schedule := &types.Schedule{
    ID:           uuid.New(),
    CourseID:     input.CourseID,
    InstructorID: input.InstructorID,
    StartsAt:     input.StartsAt,
    EndsAt:       input.EndsAt,
    Location:     input.Location,
    CreatedAt:    now,
    UpdatedAt:    now,
  }
  if err := ss.db.WithContext(ctx).Create(schedule).Error; err != nil {
    return nil, fmt.Errorf("create schedule: %w", err)
  }
  return schedule, nil
}

func (ss *scheduleService) DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error {
  if err := ss.authService.RequirePermission(ctx, "course.manage"); err != nil {
    return err
  }
  return ss.db.WithContext(ctx).
    Where("id = ?", scheduleID).
    Delete(&types.Schedule{}).Error
}
