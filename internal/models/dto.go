package models

import "time"

// AttendancePercentage is one row of an aggregated attendance report.
type AttendancePercentage struct {
	StudentID    string  `json:"student_id"`
	SubjectCode  string  `json:"subject_code"`
	TotalClasses int64   `json:"total_classes"`
	Attended     int64   `json:"attended"`
	Percentage   float64 `json:"percentage"`
}

// AttendanceRecord is the read shape of one attendance row with its subject
// resolved through the session.
type AttendanceRecord struct {
	ID          uint             `json:"id"`
	SessionID   uint             `json:"session_id"`
	SubjectCode string           `json:"subject_code"`
	StudentID   string           `json:"student_id"`
	Status      AttendanceStatus `json:"status"`
	MarkedAt    time.Time        `json:"marked_at"`
}
