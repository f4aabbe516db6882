package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleInstructor = "instructor"
)

type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"column:password;not null" json:"-"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Phone      string         `gorm:"column:phone" json:"phone"`
	Role       string         `gorm:"column:role;not null;default:instructor" json:"role"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	AvatarPath string         `gorm:"column:avatar_path" json:"avatar_path,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
