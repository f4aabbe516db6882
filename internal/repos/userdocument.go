package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type UserDocumentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, docs []*types.UserDocument) ([]*types.UserDocument, error)
  GetByIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, docIDs []uuid.UUID) ([]*types.UserDocument, error)
  GetLatestByTargets(ctx context.Context, tx *gorm.DB, targetType string, targetIDs []string) (map[string]*types.UserDocument, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetType string) ([]*types.UserDocument, error)
  DeactivateByIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, docIDs []uuid.UUID) error
}

type userDocumentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserDocumentRepo(db *gorm.DB, baseLog *logger.Logger) UserDocumentRepo {
  repoLog := baseLog.With("repo", "UserDocumentRepo")
  return &userDocumentRepo{db: db, log: repoLog}
}

func (udr *userDocumentRepo) Create(ctx context.Context, tx *gorm.DB, docs []*types.UserDocument) ([]*types.UserDocument, error) {
  transaction := tx
  if transaction == nil {
    transaction = udr.db
  }
  if len(docs) == 0 {
    return []*types.UserDocument{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&docs).Error; err != nil {
    return nil, err
  }
  return docs, nil
}

// GetByIDsForUser returns the caller's active documents among docIDs, with
// render jobs loaded. Order is not guaranteed; callers re-sort by their own
// input order.
func (udr *userDocumentRepo) GetByIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, docIDs []uuid.UUID) ([]*types.UserDocument, error) {
  transaction := tx
  if transaction == nil {
    transaction = udr.db
  }
  var results []*types.UserDocument
  if len(docIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("RenderJob").
    Where("id IN ? AND user_id = ? AND is_active = ?", docIDs, userID, true).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetLatestByTargets returns the newest document row per target id. Only the
// newest row per target is kept, older rows are never consulted even when
// the newest one has no finished render job.
func (udr *userDocumentRepo) GetLatestByTargets(ctx context.Context, tx *gorm.DB, targetType string, targetIDs []string) (map[string]*types.UserDocument, error) {
  transaction := tx
  if transaction == nil {
    transaction = udr.db
  }
  latest := map[string]*types.UserDocument{}
  if len(targetIDs) == 0 {
    return latest, nil
  }
  var rows []*types.UserDocument
  if err := transaction.WithContext(ctx).
    Preload("RenderJob").
    Where("target_type = ? AND target_id IN ? AND is_active = ?", targetType, targetIDs, true).
    Order("created_at DESC").
    Find(&rows).Error; err != nil {
    return nil, err
  }
  for _, row := range rows {
    if row == nil {
      continue
    }
    if _, seen := latest[row.TargetID]; !seen {
      latest[row.TargetID] = row
    }
  }
  return latest, nil
}

func (udr *userDocumentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetType string) ([]*types.UserDocument, error) {
  transaction := tx
  if transaction == nil {
    transaction = udr.db
  }
  var results []*types.UserDocument
  q := transaction.WithContext(ctx).
    Preload("RenderJob").
    Where("user_id = ? AND is_active = ?", userID, true)
  if targetType != "" {
    q = q.Where("target_type = ?", targetType)
  }
  if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (udr *userDocumentRepo) DeactivateByIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, docIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = udr.db
  }
  if len(docIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Model(&types.UserDocument{}).
    Where("id IN ? AND user_id = ?", docIDs, userID).
    Update("is_active", false).Error
}
