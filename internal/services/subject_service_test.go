package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/events"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/qr"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

func TestSubjectService_CreateSubject(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	v := validator.New()
	ctx := context.Background()

	repo := newFakeRepository()
	repo.seedTeacher("T1", "Ravi Kumar")

	publisher := events.NewMockEventPublisher(logger)
	service := NewSubjectService(repo, logger, v, publisher, t.TempDir())

	t.Run("Success", func(t *testing.T) {
		subject, err := service.CreateSubject(ctx, &CreateSubjectRequest{
			Code:      "CS101",
			Name:      "Intro to Programming",
			TeacherID: "T1",
		})
		if err != nil {
			t.Fatalf("expected subject to be created, got %v", err)
		}
		if subject.ID == 0 {
			t.Error("expected subject ID to be assigned")
		}
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		_, err := service.CreateSubject(ctx, &CreateSubjectRequest{
			Code:      "CS101",
			Name:      "Another Name",
			TeacherID: "T1",
		})
		if !errors.Is(err, ErrDuplicateSubjectCode) {
			t.Errorf("expected ErrDuplicateSubjectCode, got %v", err)
		}
	})

	t.Run("UnknownTeacher", func(t *testing.T) {
		_, err := service.CreateSubject(ctx, &CreateSubjectRequest{
			Code:      "MA201",
			Name:      "Calculus",
			TeacherID: "T404",
		})
		if !errors.Is(err, ErrTeacherNotFound) {
			t.Errorf("expected ErrTeacherNotFound, got %v", err)
		}
	})
}

func TestSubjectService_CreateSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	v := validator.New()
	ctx := context.Background()

	repo := newFakeRepository()
	repo.seedTeacher("T1", "Ravi Kumar")
	repo.seedTeacher("T2", "Meena Iyer")
	subject := repo.seedSubject("CS101", "T1")

	publisher := events.NewMockEventPublisher(logger)
	service := NewSubjectService(repo, logger, v, publisher, t.TempDir())

	req := &CreateSessionRequest{
		SubjectID: subject.ID,
		Topic:     "Intro",
		ClassDate: "2024-01-10",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	t.Run("GeneratesQRCode", func(t *testing.T) {
		session, err := service.CreateSession(ctx, req, "T1")
		if err != nil {
			t.Fatalf("expected session to be created, got %v", err)
		}

		var meta models.SessionQRCode
		if err := json.Unmarshal(session.QRCode, &meta); err != nil {
			t.Fatalf("session QR metadata is not valid JSON: %v", err)
		}

		payload, err := qr.DecodePayload(meta.Payload)
		if err != nil {
			t.Fatalf("stored payload does not decode: %v", err)
		}
		if payload.SubjectCode != "CS101" || payload.Topic != "Intro" || payload.ClassDate != "2024-01-10" {
			t.Errorf("unexpected payload: %+v", payload)
		}

		if _, err := os.Stat(meta.ImagePath); err != nil {
			t.Errorf("QR image was not written: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeSessionCreated {
			t.Errorf("expected one session.created event, got %+v", published)
		}
	})

	t.Run("OtherTeacherForbidden", func(t *testing.T) {
		_, err := service.CreateSession(ctx, req, "T2")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("UnknownSubject", func(t *testing.T) {
		bad := *req
		bad.SubjectID = 999

		_, err := service.CreateSession(ctx, &bad, "T1")
		if !errors.Is(err, ErrSubjectNotFound) {
			t.Errorf("expected ErrSubjectNotFound, got %v", err)
		}
	})

	t.Run("CommaTopicRejected", func(t *testing.T) {
		bad := *req
		bad.Topic = "Intro, part two"

		_, err := service.CreateSession(ctx, &bad, "T1")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})
}
