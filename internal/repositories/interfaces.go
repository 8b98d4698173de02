package repositories

import (
	"context"
	"errors"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
)

// Sentinel errors shared by all repository implementations. Implementations
// translate driver-level errors into these so services never see gorm
// internals.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// IsNotFoundError reports whether err is a repository not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a unique-constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	List(ctx context.Context) ([]models.Teacher, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	GetByCode(ctx context.Context, code string) (*models.Subject, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Subject, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	// GetBySubject resolves a session only when it belongs to the given
	// subject; a session under another subject is a not-found.
	GetBySubject(ctx context.Context, sessionID, subjectID uint) (*models.Session, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]models.Session, error)
	UpdateQRCode(ctx context.Context, sessionID uint, qrCode []byte) error
}

// SummaryRow is one grouped (student, subject) tally. Percentages are
// computed by the service layer.
type SummaryRow struct {
	StudentID    string
	SubjectCode  string
	TotalClasses int64
	Attended     int64
}

type AttendanceRepository interface {
	// CreateIfAbsent inserts the row unless one already exists for the
	// (session, student) pair. The unique index decides the race: on
	// conflict nothing is written and the existing row is returned with
	// created=false.
	CreateIfAbsent(ctx context.Context, att *models.Attendance) (created bool, existing *models.Attendance, err error)

	ListBySubject(ctx context.Context, subjectID uint) ([]models.AttendanceRecord, error)

	// PairCounts tallies one (student, subject) pair. Both counts are zero
	// when the pair has no rows.
	PairCounts(ctx context.Context, studentID string, subjectID uint) (total, attended int64, err error)

	SummaryByStudent(ctx context.Context, studentID string) ([]SummaryRow, error)
	SummaryBySubject(ctx context.Context, subjectID uint) ([]SummaryRow, error)
	GlobalSummary(ctx context.Context) ([]SummaryRow, error)
}
