package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RenderJobStatusPending = "pending"
	RenderJobStatusDone    = "done"
	RenderJobStatusFailed  = "failed"
)

type RenderJob struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Status       string    `gorm:"column:status;not null;default:pending;index" json:"status"`
	TargetType   string    `gorm:"column:target_type;not null" json:"target_type"`
	TargetID     string    `gorm:"column:target_id;not null;index" json:"target_id"`
	ErrorMessage string    `gorm:"column:error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (RenderJob) TableName() string { return "render_job" }
