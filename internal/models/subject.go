package models

import (
	"time"

	"gorm.io/datatypes"
)

type Subject struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Code      string `json:"code" gorm:"uniqueIndex;not null;size:20"`
	Name      string `json:"name" gorm:"not null;size:100"`
	TeacherID string `json:"teacher_id" gorm:"not null;index;size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Teacher  Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Sessions []Session `json:"sessions,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Session is one scheduled class of a subject. StartTime and EndTime are
// wall-clock "HH:MM" strings; QRCode holds the generated code's metadata
// (payload, image path, generated_at).
type Session struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SubjectID uint           `json:"subject_id" gorm:"not null;index"`
	Topic     string         `json:"topic" gorm:"not null;size:200"`
	ClassDate datatypes.Date `json:"class_date" gorm:"not null;index"`
	StartTime string         `json:"start_time" gorm:"not null;size:5"`
	EndTime   string         `json:"end_time" gorm:"not null;size:5"`
	QRCode    datatypes.JSON `json:"qr_code" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionQRCode is the shape stored in Session.QRCode.
type SessionQRCode struct {
	Payload     string    `json:"payload"`
	ImagePath   string    `json:"image_path"`
	GeneratedAt time.Time `json:"generated_at"`
}
