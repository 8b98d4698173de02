package services

import (
	"context"
	"io"
	"time"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type RegisterTeacherRequest = validator.RegisterTeacherRequest
type RegisterStudentRequest = validator.RegisterStudentRequest
type CreateSubjectRequest = validator.CreateSubjectRequest
type CreateSessionRequest = validator.CreateSessionRequest

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	LinkedID  string          `json:"linked_id,omitempty"`
}

type MarkAttendanceResponse struct {
	Attendance    *models.Attendance `json:"attendance"`
	SubjectCode   string             `json:"subject_code"`
	AlreadyMarked bool               `json:"already_marked"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Login authenticates a user and requires the account to hold
	// requiredRole. Wrong password and unknown username are
	// indistinguishable to the caller.
	Login(ctx context.Context, req *LoginRequest, requiredRole models.UserRole) (*LoginResponse, error)
}

type RegistrationService interface {
	RegisterTeacher(ctx context.Context, req *RegisterTeacherRequest) (*models.Teacher, error)
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
}

type SubjectService interface {
	CreateSubject(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error)

	// CreateSession schedules a class and attaches a generated QR code.
	// callerID must own the subject.
	CreateSession(ctx context.Context, req *CreateSessionRequest, callerID string) (*models.Session, error)

	ListSubjects(ctx context.Context, teacherID string) ([]models.Subject, error)
	ListSessions(ctx context.Context, subjectID uint, callerID string) ([]models.Session, error)
}

type AttendanceService interface {
	// MarkAttendance decodes an uploaded QR image and records the student at
	// the session it names. Marking twice is not an error; the response
	// reports it via AlreadyMarked.
	MarkAttendance(ctx context.Context, studentID string, image io.Reader) (*MarkAttendanceResponse, error)
}

type ReportService interface {
	// StudentOverall returns per-subject percentages for one student.
	StudentOverall(ctx context.Context, studentID string) ([]models.AttendancePercentage, error)

	// StudentSubject returns the single (student, subject) percentage,
	// resolving the subject by code.
	StudentSubject(ctx context.Context, studentID, subjectCode string) (*models.AttendancePercentage, error)

	// SubjectSummary returns per-student percentages for one subject.
	// callerID must own the subject; empty callerID skips the check for
	// admin use.
	SubjectSummary(ctx context.Context, subjectID uint, callerID string) ([]models.AttendancePercentage, error)

	// SubjectRecords returns the raw attendance rows of a subject, newest
	// first.
	SubjectRecords(ctx context.Context, subjectID uint, callerID string) ([]models.AttendanceRecord, error)

	// StudentInSubject returns one student's percentage within one subject.
	StudentInSubject(ctx context.Context, subjectID uint, studentID, callerID string) (*models.AttendancePercentage, error)

	GlobalSummary(ctx context.Context) ([]models.AttendancePercentage, error)

	// ExportGlobalSummary renders the global summary as an xlsx workbook.
	ExportGlobalSummary(ctx context.Context) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Registration() RegistrationService
	Subject() SubjectService
	Attendance() AttendanceService
	Report() ReportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
