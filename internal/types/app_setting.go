package types

import (
	"time"

	"gorm.io/datatypes"
)

// AppSetting is a generic key-value store. Brochure packages persist their
// full snapshot here under key "brochure.package.<id>".
type AppSetting struct {
	Key       string         `gorm:"column:key;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"column:value;type:jsonb" json:"value"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_setting" }
