package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type RenderJobRepo interface {
  Create(ctx context.Context, tx *gorm.DB, jobs []*types.RenderJob) ([]*types.RenderJob, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, jobIDs []uuid.UUID) ([]*types.RenderJob, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, jobID uuid.UUID, status, errorMessage string) error
}

type renderJobRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRenderJobRepo(db *gorm.DB, baseLog *logger.Logger) RenderJobRepo {
  repoLog := baseLog.With("repo", "RenderJobRepo")
  return &renderJobRepo{db: db, log: repoLog}
}

func (rjr *renderJobRepo) Create(ctx context.Context, tx *gorm.DB, jobs []*types.RenderJob) ([]*types.RenderJob, error) {
  transaction := tx
  if transaction == nil {
    transaction = rjr.db
  }
  if len(jobs) == 0 {
    return []*types.RenderJob{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&jobs).Error; err != nil {
    return nil, err
  }
  return jobs, nil
}

func (rjr *renderJobRepo) GetByIDs(ctx context.Context, tx *gorm.DB, jobIDs []uuid.UUID) ([]*types.RenderJob, error) {
  transaction := tx
  if transaction == nil {
    transaction = rjr.db
  }
  var results []*types.RenderJob
  if len(jobIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", jobIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rjr *renderJobRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, jobID uuid.UUID, status, errorMessage string) error {
  transaction := tx
  if transaction == nil {
    transaction = rjr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.RenderJob{}).
    Where("id = ?", jobID).
    Updates(map[string]interface{}{
      "status":        status,
      "error_message": errorMessage,
    }).Error
}
