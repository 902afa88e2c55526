package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;not null;default:'student'" json:"role"`
	Grade      string    `gorm:"size:10;not null;index" json:"grade"` // KG1, KG2, 1-12
	LastActive time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastActive"`
}

func (User) TableName() string {
	return "users"
}
