package types

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"course_id"`
	InstructorID *uuid.UUID  `gorm:"type:uuid;index" json:"instructor_id,omitempty"`
	Instructor   *Instructor `gorm:"constraint:OnDelete:SET NULL;foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
	StartsAt     time.Time   `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt       time.Time   `gorm:"column:ends_at;not null" json:"ends_at"`
	Location     string      `gorm:"column:location" json:"location"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Schedule) TableName() string { return "schedule" }
