package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TargetTypeCourse            = "course"
	TargetTypeInstructorProfile = "instructor_profile"
	TargetTypeBrochurePackage   = "brochure_package"
)

// UserDocument records a generated artifact owned by one user. TargetID is a
// string because it holds an entity uuid for course/profile documents and a
// package id for brochure packages.
type UserDocument struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetType  string     `gorm:"column:target_type;not null;index" json:"target_type"`
	TargetID    string     `gorm:"column:target_id;not null;index" json:"target_id"`
	Label       string     `gorm:"column:label" json:"label"`
	PdfURL      string     `gorm:"column:pdf_url" json:"pdf_url"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	RenderJobID *uuid.UUID `gorm:"type:uuid;index" json:"render_job_id,omitempty"`
	RenderJob   *RenderJob `gorm:"constraint:OnDelete:SET NULL;foreignKey:RenderJobID;references:ID" json:"render_job,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserDocument) TableName() string { return "user_document" }
