package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type TemplateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error)
  Update(ctx context.Context, tx *gorm.DB, template *types.Template) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
  GetByIDAndType(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, templateType string) (*types.Template, error)
  List(ctx context.Context, tx *gorm.DB, templateType string) ([]*types.Template, error)
}

type templateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
  repoLog := baseLog.With("repo", "TemplateRepo")
  return &templateRepo{db: db, log: repoLog}
}

func (tr *templateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(templates) == 0 {
    return []*types.Template{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
    return nil, err
  }
  return templates, nil
}

func (tr *templateRepo) Update(ctx context.Context, tx *gorm.DB, template *types.Template) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  return transaction.WithContext(ctx).Save(template).Error
}

func (tr *templateRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(templateIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Delete(&types.Template{}).Error
}

// GetByIDAndType returns nil (not an error) when no template matches; the
// caller decides whether a missing template is fatal.
func (tr *templateRepo) GetByIDAndType(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, templateType string) (*types.Template, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Template
  if err := transaction.WithContext(ctx).
    Where("id = ? AND type = ?", templateID, templateType).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (tr *templateRepo) List(ctx context.Context, tx *gorm.DB, templateType string) ([]*types.Template, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Template
  q := transaction.WithContext(ctx)
  if templateType != "" {
    q = q.Where("type = ?", templateType)
  }
  if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
