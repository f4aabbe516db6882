package repos

import (
  "context"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

type AppSettingRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, setting *types.AppSetting) error
  GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.AppSetting, error)
}

type appSettingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAppSettingRepo(db *gorm.DB, baseLog *logger.Logger) AppSettingRepo {
  repoLog := baseLog.With("repo", "AppSettingRepo")
  return &appSettingRepo{db: db, log: repoLog}
}

func (asr *appSettingRepo) Upsert(ctx context.Context, tx *gorm.DB, setting *types.AppSetting) error {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "key"}},
      UpdateAll: true,
    }).
    Create(setting).Error
}

func (asr *appSettingRepo) GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.AppSetting, error) {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }
  var results []*types.AppSetting
  if len(keys) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("key IN ?", keys).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
