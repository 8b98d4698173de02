package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
)

// Event types published by this service.
const (
	TypeSessionCreated   = "session.created"
	TypeAttendanceMarked = "attendance.marked"
)

const (
	eventSource  = "qr-attendance"
	eventVersion = "1.0"
)

// Event is the envelope every published event is wrapped in.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh ID and timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// SessionCreatedEvent is emitted when a teacher creates a session and its QR
// code has been generated.
type SessionCreatedEvent struct {
	SessionID   uint   `json:"session_id"`
	SubjectCode string `json:"subject_code"`
	Topic       string `json:"topic"`
	ClassDate   string `json:"class_date"`
	StartTime   string `json:"start_time"`
}

// AttendanceMarkedEvent is emitted when a student's attendance row is
// created (not on already-marked repeats).
type AttendanceMarkedEvent struct {
	AttendanceID uint                    `json:"attendance_id"`
	SessionID    uint                    `json:"session_id"`
	SubjectCode  string                  `json:"subject_code"`
	StudentID    string                  `json:"student_id"`
	Status       models.AttendanceStatus `json:"status"`
	MarkedAt     time.Time               `json:"marked_at"`
}

// EventPublisher publishes events to the configured transport.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
