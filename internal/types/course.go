package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	DurationHours int            `gorm:"column:duration_hours;not null;default:0" json:"duration_hours"`
	Goal          string         `gorm:"column:goal" json:"goal"`
	Content       string         `gorm:"column:content" json:"content"`
	CustomFields  datatypes.JSON `gorm:"column:custom_fields;type:jsonb" json:"custom_fields,omitempty"`
	Instructors   []*Instructor  `gorm:"many2many:course_instructor;" json:"instructors,omitempty"`
	Lectures      []*Lecture     `gorm:"foreignKey:CourseID;references:ID" json:"lectures,omitempty"`
	Schedules     []*Schedule    `gorm:"foreignKey:CourseID;references:ID" json:"schedules,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
