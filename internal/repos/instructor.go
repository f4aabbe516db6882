package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type InstructorRepo interface {
  Create(ctx context.Context, tx *gorm.DB, instructors []*types.Instructor) ([]*types.Instructor, error)
  Update(ctx context.Context, tx *gorm.DB, instructor *types.Instructor) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) error
  GetByIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Instructor, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Instructor, error)
  List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Instructor, error)
}

type instructorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInstructorRepo(db *gorm.DB, baseLog *logger.Logger) InstructorRepo {
  repoLog := baseLog.With("repo", "InstructorRepo")
  return &instructorRepo{db: db, log: repoLog}
}

func (ir *instructorRepo) Create(ctx context.Context, tx *gorm.DB, instructors []*types.Instructor) ([]*types.Instructor, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(instructors) == 0 {
    return []*types.Instructor{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&instructors).Error; err != nil {
    return nil, err
  }
  return instructors, nil
}

func (ir *instructorRepo) Update(ctx context.Context, tx *gorm.DB, instructor *types.Instructor) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  return transaction.WithContext(ctx).Save(instructor).Error
}

func (ir *instructorRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(instructorIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", instructorIDs).
    Delete(&types.Instructor{}).Error
}

func (ir *instructorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Instructor, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Instructor
  if len(instructorIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("User").
    Preload("Courses").
    Preload("Schedules").
    Where("id IN ?", instructorIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *instructorRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Instructor, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Instructor
  if len(userIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *instructorRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Instructor, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Instructor
  q := transaction.WithContext(ctx).Order("name ASC").Offset(offset)
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
