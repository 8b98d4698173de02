package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/cache"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/events"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/qr"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
	cache     *cache.CacheManager
}

func NewAttendanceService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher, cacheManager *cache.CacheManager) AttendanceService {
	return &attendanceService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		cache:     cacheManager,
	}
}

// MarkAttendance records the student at the session named by the uploaded QR
// image. The insert races through the unique index, so two concurrent scans
// of the same code end with one row and one AlreadyMarked response.
func (s *attendanceService) MarkAttendance(ctx context.Context, studentID string, image io.Reader) (*MarkAttendanceResponse, error) {
	raw, err := qr.DecodeImage(image)
	if err != nil {
		s.logger.Warn("QR image decode failed", "student_id", studentID, "error", err)
		return nil, ErrQRDecodeFailed
	}

	payload, err := qr.DecodePayload(raw)
	if err != nil {
		if errors.Is(err, qr.ErrMalformedPayload) {
			return nil, fmt.Errorf("%w: %v", ErrQRDecodeFailed, err)
		}
		return nil, err
	}

	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	subject, err := s.repo.Subject().GetByCode(ctx, payload.SubjectCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	// A session ID that does not parse means the code was tampered with or
	// truncated; treat it the same as a session that does not exist.
	sessionID, err := strconv.ParseUint(payload.SessionID, 10, 32)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := s.repo.Session().GetBySubject(ctx, uint(sessionID), subject.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	att := &models.Attendance{
		SessionID: session.ID,
		StudentID: studentID,
		Status:    models.AttendancePresent,
	}

	created, row, err := s.repo.Attendance().CreateIfAbsent(ctx, att)
	if err != nil {
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}

	if !created {
		s.logger.Info("Attendance already marked",
			"student_id", studentID,
			"session_id", session.ID,
			"subject_code", subject.Code)
		return &MarkAttendanceResponse{
			Attendance:    row,
			SubjectCode:   subject.Code,
			AlreadyMarked: true,
		}, nil
	}

	s.logger.Info("Attendance marked",
		"student_id", studentID,
		"session_id", session.ID,
		"subject_code", subject.Code)

	cache.InvalidateAttendanceCache(ctx, s.cache, studentID, subject.ID)

	event := events.NewEvent(events.TypeAttendanceMarked, events.AttendanceMarkedEvent{
		AttendanceID: row.ID,
		SessionID:    session.ID,
		SubjectCode:  subject.Code,
		StudentID:    studentID,
		Status:       row.Status,
		MarkedAt:     row.MarkedAt,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish attendance.marked event", "error", err, "attendance_id", row.ID)
	}

	return &MarkAttendanceResponse{
		Attendance:    row,
		SubjectCode:   subject.Code,
		AlreadyMarked: false,
	}, nil
}
