package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance records one student at one session. The composite unique index
// on (session_id, student_id) is what guarantees at-most-once marking; the
// insert path relies on it instead of a read-then-write check. The owning
// subject is derived through the session join at read time.
type Attendance struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	SessionID uint             `json:"session_id" gorm:"not null;uniqueIndex:idx_session_student"`
	StudentID string           `json:"student_id" gorm:"not null;size:20;uniqueIndex:idx_session_student;index"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10;default:Present"`
	MarkedAt  time.Time        `json:"marked_at" gorm:"autoCreateTime"`

	// Relations
	Session Session `json:"session,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendances"
}
