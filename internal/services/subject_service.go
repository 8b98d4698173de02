package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/events"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/qr"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

type subjectService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	publisher  events.EventPublisher
	qrMediaDir string
}

func NewSubjectService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, qrMediaDir string) SubjectService {
	return &subjectService{
		repo:       repo,
		logger:     logger,
		validator:  validator,
		publisher:  publisher,
		qrMediaDir: qrMediaDir,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	if _, err := s.repo.Teacher().GetByID(ctx, req.TeacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	subject := &models.Subject{
		Code:      req.Code,
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}

	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateSubjectCode
		}
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("Subject created", "subject_id", subject.ID, "code", subject.Code, "teacher_id", subject.TeacherID)

	return subject, nil
}

// CreateSession schedules a class, renders its QR code and stores the code's
// metadata on the session row. The session insert and the QR metadata update
// share one transaction so a failed render leaves no half-built session.
func (s *subjectService) CreateSession(ctx context.Context, req *CreateSessionRequest, callerID string) (*models.Session, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	subject, err := s.repo.Subject().GetByID(ctx, req.SubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	if callerID != "" && subject.TeacherID != callerID {
		return nil, fmt.Errorf("subject belongs to another teacher: %w", ErrForbidden)
	}

	classDate, err := time.Parse("2006-01-02", req.ClassDate)
	if err != nil {
		return nil, fmt.Errorf("%w: class_date must be YYYY-MM-DD", ErrValidationFailed)
	}

	session := &models.Session{
		SubjectID: subject.ID,
		Topic:     req.Topic,
		ClassDate: datatypes.Date(classDate),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Session().Create(ctx, session); err != nil {
			return err
		}

		imagePath, payload, err := qr.GenerateSessionQR(s.qrMediaDir, subject.Code, session.ID, req.Topic, req.ClassDate, req.StartTime)
		if err != nil {
			return err
		}

		qrJSON, err := json.Marshal(models.SessionQRCode{
			Payload:     payload,
			ImagePath:   imagePath,
			GeneratedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal qr metadata: %w", err)
		}
		session.QRCode = qrJSON

		return txRepo.Session().UpdateQRCode(ctx, session.ID, qrJSON)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session created",
		"session_id", session.ID,
		"subject_code", subject.Code,
		"class_date", req.ClassDate)

	event := events.NewEvent(events.TypeSessionCreated, events.SessionCreatedEvent{
		SessionID:   session.ID,
		SubjectCode: subject.Code,
		Topic:       req.Topic,
		ClassDate:   req.ClassDate,
		StartTime:   req.StartTime,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Event delivery is best-effort; the session itself is committed.
		s.logger.Error("Failed to publish session.created event", "error", err, "session_id", session.ID)
	}

	return session, nil
}

func (s *subjectService) ListSubjects(ctx context.Context, teacherID string) ([]models.Subject, error) {
	if _, err := s.repo.Teacher().GetByID(ctx, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	subjects, err := s.repo.Subject().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectService) ListSessions(ctx context.Context, subjectID uint, callerID string) ([]models.Session, error) {
	subject, err := s.repo.Subject().GetByID(ctx, subjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	if callerID != "" && subject.TeacherID != callerID {
		return nil, fmt.Errorf("subject belongs to another teacher: %w", ErrForbidden)
	}

	sessions, err := s.repo.Session().ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
