package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type CourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  Update(ctx context.Context, tx *gorm.DB, course *types.Course) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
  GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
  List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Course, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
  repoLog := baseLog.With("repo", "CourseRepo")
  return &courseRepo{db: db, log: repoLog}
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(courses) == 0 {
    return []*types.Course{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, err
  }
  return courses, nil
}

func (cr *courseRepo) Update(ctx context.Context, tx *gorm.DB, course *types.Course) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).Save(course).Error
}

func (cr *courseRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(courseIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", courseIDs).
    Delete(&types.Course{}).Error
}

// GetByIDs loads full course rows with lectures (ordered), instructors and
// schedules. Soft-deleted lectures drop out via the gorm default scope.
func (cr *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Course
  if len(courseIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("Lectures", func(db *gorm.DB) *gorm.DB {
      return db.Order("lecture.sort_order ASC")
    }).
    Preload("Instructors").
    Preload("Schedules.Instructor").
    Where("id IN ?", courseIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Course
  q := transaction.WithContext(ctx).Order("created_at DESC").Offset(offset)
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
