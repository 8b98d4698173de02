package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
)

// reportFixture seeds two subjects under different teachers with enough rows
// to exercise the grouped percentages: S1 attends 2 of 3 CS101 classes and 1
// of 1 MA201 class, S2 attends 1 of 1 CS101 class.
func reportFixture(t *testing.T) *fakeRepository {
	t.Helper()

	repo := newFakeRepository()
	repo.seedTeacher("T1", "Ravi Kumar")
	repo.seedTeacher("T2", "Meena Iyer")
	repo.seedStudent("S1", "Asha Rao")
	repo.seedStudent("S2", "Vikram Shah")

	cs := repo.seedSubject("CS101", "T1")
	ma := repo.seedSubject("MA201", "T2")

	cs1 := repo.seedSession(cs.ID, "Intro")
	cs2 := repo.seedSession(cs.ID, "Pointers")
	cs3 := repo.seedSession(cs.ID, "Slices")
	ma1 := repo.seedSession(ma.ID, "Limits")

	repo.seedAttendance(cs1.ID, "S1", models.AttendancePresent)
	repo.seedAttendance(cs2.ID, "S1", models.AttendancePresent)
	repo.seedAttendance(cs3.ID, "S1", models.AttendanceAbsent)
	repo.seedAttendance(cs1.ID, "S2", models.AttendancePresent)
	repo.seedAttendance(ma1.ID, "S1", models.AttendancePresent)

	return repo
}

func TestReportService_StudentOverall(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	repo := reportFixture(t)
	service := NewReportService(repo, logger)

	t.Run("PerSubjectPercentages", func(t *testing.T) {
		rows, err := service.StudentOverall(ctx, "S1")
		if err != nil {
			t.Fatalf("expected summary, got %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 subjects, got %d", len(rows))
		}

		// Sorted by subject code: CS101 then MA201.
		if rows[0].SubjectCode != "CS101" || rows[0].TotalClasses != 3 || rows[0].Attended != 2 {
			t.Errorf("unexpected CS101 row: %+v", rows[0])
		}
		if rows[0].Percentage != 66.67 {
			t.Errorf("expected 66.67, got %v", rows[0].Percentage)
		}
		if rows[1].SubjectCode != "MA201" || rows[1].Percentage != 100 {
			t.Errorf("unexpected MA201 row: %+v", rows[1])
		}
	})

	t.Run("NoRecords", func(t *testing.T) {
		repo.seedStudent("S3", "Nobody Yet")

		_, err := service.StudentOverall(ctx, "S3")
		if !errors.Is(err, ErrNoAttendanceRecords) {
			t.Errorf("expected ErrNoAttendanceRecords, got %v", err)
		}
	})

	t.Run("UnknownStudent", func(t *testing.T) {
		_, err := service.StudentOverall(ctx, "S404")
		if !errors.Is(err, ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestReportService_StudentSubject(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	repo := reportFixture(t)
	service := NewReportService(repo, logger)

	t.Run("Pair", func(t *testing.T) {
		row, err := service.StudentSubject(ctx, "S1", "CS101")
		if err != nil {
			t.Fatalf("expected pair summary, got %v", err)
		}
		if row.TotalClasses != 3 || row.Attended != 2 || row.Percentage != 66.67 {
			t.Errorf("unexpected row: %+v", row)
		}
	})

	t.Run("UnknownSubject", func(t *testing.T) {
		_, err := service.StudentSubject(ctx, "S1", "XX999")
		if !errors.Is(err, ErrSubjectNotFound) {
			t.Errorf("expected ErrSubjectNotFound, got %v", err)
		}
	})

	t.Run("EmptyPair", func(t *testing.T) {
		_, err := service.StudentSubject(ctx, "S2", "MA201")
		if !errors.Is(err, ErrNoAttendanceRecords) {
			t.Errorf("expected ErrNoAttendanceRecords, got %v", err)
		}
	})
}

func TestReportService_SubjectSummary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	repo := reportFixture(t)
	service := NewReportService(repo, logger)

	t.Run("OwnerSeesSummary", func(t *testing.T) {
		rows, err := service.SubjectSummary(ctx, 1, "T1")
		if err != nil {
			t.Fatalf("expected summary, got %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 students, got %d", len(rows))
		}
		if rows[0].StudentID != "S1" || rows[1].StudentID != "S2" {
			t.Errorf("unexpected order: %+v", rows)
		}
	})

	t.Run("OtherTeacherForbidden", func(t *testing.T) {
		_, err := service.SubjectSummary(ctx, 1, "T2")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("AdminSkipsOwnership", func(t *testing.T) {
		if _, err := service.SubjectSummary(ctx, 1, ""); err != nil {
			t.Errorf("expected admin access, got %v", err)
		}
	})
}

func TestReportService_ExportGlobalSummary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	repo := reportFixture(t)
	service := NewReportService(repo, logger)

	data, err := service.ExportGlobalSummary(ctx)
	if err != nil {
		t.Fatalf("expected export, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Attendance Summary"
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("failed to read header: %v", err)
	}
	if header != "Student ID" {
		t.Errorf("expected header 'Student ID', got %q", header)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	// Header plus three grouped (student, subject) pairs.
	if len(rows) != 4 {
		t.Errorf("expected 4 rows, got %d", len(rows))
	}
}

func TestReportService_ExportEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewReportService(newFakeRepository(), logger)

	_, err := service.ExportGlobalSummary(context.Background())
	if !errors.Is(err, ErrNoAttendanceRecords) {
		t.Errorf("expected ErrNoAttendanceRecords, got %v", err)
	}
}
