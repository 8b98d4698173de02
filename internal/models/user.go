package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User is a login account. Teacher and student accounts carry the ID of the
// roster row they belong to in LinkedID; admin accounts leave it nil.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string   `json:"-" gorm:"not null;size:128"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`
	LinkedID     *string  `json:"linked_id" gorm:"size:20"`
	Active       bool     `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
