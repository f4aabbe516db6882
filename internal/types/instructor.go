package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Instructor struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Title       string         `gorm:"column:title" json:"title"`
	Bio         string         `gorm:"column:bio" json:"bio"`
	Affiliation string         `gorm:"column:affiliation" json:"affiliation"`
	Email       string         `gorm:"column:email" json:"email"`
	Phone       string         `gorm:"column:phone" json:"phone"`
	Links       datatypes.JSON `gorm:"column:links;type:jsonb" json:"links,omitempty"`
	Courses     []*Course      `gorm:"many2many:course_instructor;" json:"courses,omitempty"`
	Schedules   []*Schedule    `gorm:"foreignKey:InstructorID;references:ID" json:"schedules,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Instructor) TableName() string { return "instructor" }
