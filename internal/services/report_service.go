package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// percentage rounds attended/total to two decimals, half away from zero.
func percentage(attended, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*100) / 100
}

func toPercentages(rows []repositories.SummaryRow) []models.AttendancePercentage {
	out := make([]models.AttendancePercentage, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.AttendancePercentage{
			StudentID:    row.StudentID,
			SubjectCode:  row.SubjectCode,
			TotalClasses: row.TotalClasses,
			Attended:     row.Attended,
			Percentage:   percentage(row.Attended, row.TotalClasses),
		})
	}
	return out
}

func (s *reportService) StudentOverall(ctx context.Context, studentID string) ([]models.AttendancePercentage, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	rows, err := s.repo.Attendance().SummaryByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return toPercentages(rows), nil
}

func (s *reportService) StudentSubject(ctx context.Context, studentID, subjectCode string) (*models.AttendancePercentage, error) {
	subject, err := s.repo.Subject().GetByCode(ctx, subjectCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return s.pairPercentage(ctx, studentID, subject)
}

func (s *reportService) SubjectSummary(ctx context.Context, subjectID uint, callerID string) ([]models.AttendancePercentage, error) {
	if _, err := s.ownedSubject(ctx, subjectID, callerID); err != nil {
		return nil, err
	}

	rows, err := s.repo.Attendance().SummaryBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return toPercentages(rows), nil
}

func (s *reportService) SubjectRecords(ctx context.Context, subjectID uint, callerID string) ([]models.AttendanceRecord, error) {
	if _, err := s.ownedSubject(ctx, subjectID, callerID); err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance().ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	// An empty list is a valid answer here: the subject exists, nobody has
	// scanned yet.
	return records, nil
}

func (s *reportService) StudentInSubject(ctx context.Context, subjectID uint, studentID, callerID string) (*models.AttendancePercentage, error) {
	subject, err := s.ownedSubject(ctx, subjectID, callerID)
	if err != nil {
		return nil, err
	}

	return s.pairPercentage(ctx, studentID, subject)
}

func (s *reportService) GlobalSummary(ctx context.Context) ([]models.AttendancePercentage, error) {
	rows, err := s.repo.Attendance().GlobalSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get global summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return toPercentages(rows), nil
}

// ExportGlobalSummary renders the global summary as an xlsx workbook.
func (s *reportService) ExportGlobalSummary(ctx context.Context) ([]byte, error) {
	summary, err := s.GlobalSummary(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Attendance Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Student ID", "Subject Code", "Total Classes", "Attended", "Percentage"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, row := range summary {
		values := []interface{}{row.StudentID, row.SubjectCode, row.TotalClasses, row.Attended, row.Percentage}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Exported attendance summary", "rows", len(summary))

	return buf.Bytes(), nil
}

// ownedSubject loads a subject and enforces teacher ownership when callerID
// is set. Admin callers pass an empty callerID.
func (s *reportService) ownedSubject(ctx context.Context, subjectID uint, callerID string) (*models.Subject, error) {
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

	return subject, nil
}

// pairPercentage tallies one (student, subject) pair, verifying the student
// exists first so a typo'd ID reads as student-not-found rather than
// no-records.
func (s *reportService) pairPercentage(ctx context.Context, studentID string, subject *models.Subject) (*models.AttendancePercentage, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	total, attended, err := s.repo.Attendance().PairCounts(ctx, studentID, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	if total == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return &models.AttendancePercentage{
		StudentID:    studentID,
		SubjectCode:  subject.Code,
		TotalClasses: total,
		Attended:     attended,
		Percentage:   percentage(attended, total),
	}, nil
}
