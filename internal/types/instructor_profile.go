package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InstructorProfile is the self-service profile a user maintains about
// themselves. There is no foreign key to Instructor; the two are joined
// through the shared user id.
type InstructorProfile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DisplayName string         `gorm:"column:display_name;not null" json:"display_name"`
	Title       string         `gorm:"column:title" json:"title"`
	Bio         string         `gorm:"column:bio" json:"bio"`
	Affiliation string         `gorm:"column:affiliation" json:"affiliation"`
	PhotoPath   string         `gorm:"column:photo_path" json:"photo_path,omitempty"`
	Links       datatypes.JSON `gorm:"column:links;type:jsonb" json:"links,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (InstructorProfile) TableName() string { return "instructor_profile" }
