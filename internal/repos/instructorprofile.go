package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type InstructorProfileRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, profile *types.InstructorProfile) error
  GetByIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) ([]*types.InstructorProfile, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.InstructorProfile, error)
}

type instructorProfileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInstructorProfileRepo(db *gorm.DB, baseLog *logger.Logger) InstructorProfileRepo {
  repoLog := baseLog.With("repo", "InstructorProfileRepo")
  return &instructorProfileRepo{db: db, log: repoLog}
}

// Upsert keeps one profile per user (conflict key user_id).
func (ipr *instructorProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.InstructorProfile) error {
  transaction := tx
  if transaction == nil {
    transaction = ipr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}},
      UpdateAll: true,
    }).
    Create(profile).Error
}

func (ipr *instructorProfileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) ([]*types.InstructorProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = ipr.db
  }
  var results []*types.InstructorProfile
  if len(profileIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("id IN ?", profileIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ipr *instructorProfileRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.InstructorProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = ipr.db
  }
  var results []*types.InstructorProfile
  if len(userIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
