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

type CourseCreateInput struct {
  Title         string
  Description   string
  DurationHours int
  Goal          string
  Content       string
  CustomFields  []byte
  InstructorIDs []uuid.UUID
  Lectures      []CourseLectureInput
}

type CourseLectureInput struct {
  Title     string
  Content   string
  SortOrder int
}

type CourseService interface {
  CreateCourse(ctx context.Context, input CourseCreateInput) (*types.Course, error)
  UpdateCourse(ctx context.Context, courseID uuid.UUID, input CourseCreateInput) (*types.Course, error)
  DeleteCourse(ctx context.Context, courseID uuid.UUID) error
  GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
  ListCourses(ctx context.Context, offset, limit int) ([]*types.Course, error)
}

type courseService struct {
  db             *gorm.DB
  log            *logger.Logger
  authService    AuthService
  courseRepo     repos.CourseRepo
  instructorRepo repos.InstructorRepo
}

func NewCourseService(
  db *gorm.DB,
  log *logger.Logger,
  authService AuthService,
  courseRepo repos.CourseRepo,
  instructorRepo repos.InstructorRepo,
) CourseService {
  serviceLog := log.With("service", "CourseService")
  return &courseService{
    db:             db,
    log:            serviceLog,
    authService:    authService,
    courseRepo:     courseRepo,
    instructorRepo: instructorRepo,
  }
}

func (cs *courseService) CreateCourse(ctx context.Context, input CourseCreateInput) (*types.Course, error) {
  if err := cs.authService.RequirePermission(ctx, "course.manage"); err != nil {
    return nil, err
  }
  if input.Title == "" {
    return nil, apierr.Validation("과정 제목은 필수입니다.")
  }

  now := time.Now()
  course := &types.Course{
    ID:            uuid.New(),
    Title:         input.Title,
    Description:   input.Description,
    DurationHours: input.DurationHours,
    Goal:          input.Goal,
    Content:       input.Content,
    CustomFields:  input.CustomFields,
    CreatedAt:     now,
    UpdatedAt:     now,
  }
  for i, lec := range input.Lectures {
    sortOrder := lec.SortOrder
    if sortOrder == 0 {
      sortOrder = i
    }
    course.Lectures = append(course.Lectures, &types.Lecture{
      ID:        uuid.New(),
      CourseID:  course.ID,
      Title:     lec.Title,
      Content:   lec.Content,
      SortOrder: sortOrder,
      CreatedAt: now,
      UpdatedAt: now,
    })
  }

  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if len(input.InstructorIDs) > 0 {
      instructors, iErr := cs.instructorRepo.GetByIDs(ctx, tx, input.InstructorIDs)
      if iErr != nil {
        return fmt.Errorf("load instructors: %w", iErr)
      }
      course.Instructors = instructors
    }
    if _, cErr := cs.courseRepo.Create(ctx, tx, []*types.Course{course}); cErr != nil {
      return fmt.Errorf("create course: %w", cErr)
    }
    return nil
  })
  if err != nil {
    cs.log.Error("CreateCourse failed", "error", err)
    return nil, err
  }
  return course, nil
}

func (cs *courseService) UpdateCourse(ctx context.Context, courseID uuid.UUID, input CourseCreateInput) (*types.Course, error) {
  if err := cs.authService.RequirePermission(ctx, "course.manage"); err != nil {
    return nil, err
  }
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil {
    return nil, apierr.NotFound(apierr.MsgCourseNotFound)
  }
  course := courses[0]
  course.Title = input.Title
  course.Description = input.Description
  course.DurationHours = input.DurationHours
  course.Goal = input.Goal
  course.Content = input.Content
  if input.CustomFields != nil {
    course.CustomFields = input.CustomFields
  }
  course.UpdatedAt = time.Now()
  if err := cs.courseRepo.Update(ctx, nil, course); err != nil {
    return nil, fmt.Errorf("update course: %w", err)
  }
  return course, nil
}

func (cs *courseService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
  if err := cs.authService.RequirePermission(ctx, "course.manage"); err != nil {
    return err
  }
  return cs.courseRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{courseID})
}

func (cs *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("get course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil {
    return nil, apierr.NotFound(apierr.MsgCourseNotFound)
  }
  return courses[0], nil
}

func (cs *courseService) ListCourses(ctx context.Context, offset, limit int) ([]*types.Course, error) {
  courses, err := cs.courseRepo.List(ctx, nil, offset, limit)
  if err != nil {
    return nil, fmt.Errorf("list courses: %w", err)
  }
  return courses, nil
}
