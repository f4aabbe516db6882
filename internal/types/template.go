package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TemplateTypeBrochurePackage   = "brochure_package"
	TemplateTypeCourseIntro       = "course_intro"
	TemplateTypeInstructorProfile = "instructor_profile"
)

type Template struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string         `gorm:"column:type;not null;index" json:"type"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	HTML      string         `gorm:"column:html;type:text" json:"html"`
	CSS       string         `gorm:"column:css;type:text" json:"css"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Template) TableName() string { return "template" }
