package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/cache"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type attendanceRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewAttendancePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AttendanceRepository {
	return &attendanceRepository{db: db, cache: cacheManager}
}

// CreateIfAbsent inserts with ON CONFLICT DO NOTHING against the
// (session_id, student_id) unique index. Zero rows affected means another
// request already marked this pair, so the existing row is fetched and
// returned instead.
func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, att *models.Attendance) (bool, *models.Attendance, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(att)
	if result.Error != nil {
		return false, nil, translateError(result.Error, "create attendance")
	}

	if result.RowsAffected == 0 {
		var existing models.Attendance
		if err := r.db.WithContext(ctx).
			Where("session_id = ? AND student_id = ?", att.SessionID, att.StudentID).
			First(&existing).Error; err != nil {
			return false, nil, translateError(err, "get existing attendance")
		}
		return false, &existing, nil
	}

	return true, att, nil
}

func (r *attendanceRepository) ListBySubject(ctx context.Context, subjectID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord

	if err := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.id, attendances.session_id, subjects.code as subject_code, "+
			"attendances.student_id, attendances.status, attendances.marked_at").
		Joins("JOIN sessions ON attendances.session_id = sessions.id").
		Joins("JOIN subjects ON sessions.subject_id = subjects.id").
		Where("subjects.id = ?", subjectID).
		Order("attendances.marked_at DESC").
		Scan(&records).Error; err != nil {
		return nil, translateError(err, "list attendance by subject")
	}

	return records, nil
}

func (r *attendanceRepository) PairCounts(ctx context.Context, studentID string, subjectID uint) (int64, int64, error) {
	var row struct {
		TotalClasses int64
		Attended     int64
	}

	cacheKey := fmt.Sprintf("student:%s:subject:%d", studentID, subjectID)
	err := r.cache.Stats.CacheOrExecute(ctx, cacheKey, &row, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var fetched struct {
			TotalClasses int64
			Attended     int64
		}
		if err := r.db.WithContext(ctx).
			Table("attendances").
			Select("COUNT(*) as total_classes, "+
				"COUNT(*) FILTER (WHERE attendances.status = ?) as attended", models.AttendancePresent).
			Joins("JOIN sessions ON attendances.session_id = sessions.id").
			Where("attendances.student_id = ? AND sessions.subject_id = ?", studentID, subjectID).
			Scan(&fetched).Error; err != nil {
			return nil, translateError(err, "count attendance pair")
		}
		return &fetched, nil
	})
	if err != nil {
		return 0, 0, err
	}

	return row.TotalClasses, row.Attended, nil
}

func (r *attendanceRepository) SummaryByStudent(ctx context.Context, studentID string) ([]repositories.SummaryRow, error) {
	var rows []repositories.SummaryRow

	cacheKey := fmt.Sprintf("student:%s:summary", studentID)
	err := r.cache.Stats.CacheOrExecute(ctx, cacheKey, &rows, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		fetched, err := r.querySummary(ctx, "attendances.student_id = ?", studentID)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *attendanceRepository) SummaryBySubject(ctx context.Context, subjectID uint) ([]repositories.SummaryRow, error) {
	var rows []repositories.SummaryRow

	cacheKey := fmt.Sprintf("subject:%d:summary", subjectID)
	err := r.cache.Stats.CacheOrExecute(ctx, cacheKey, &rows, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		fetched, err := r.querySummary(ctx, "sessions.subject_id = ?", subjectID)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *attendanceRepository) GlobalSummary(ctx context.Context) ([]repositories.SummaryRow, error) {
	var rows []repositories.SummaryRow

	err := r.cache.Stats.CacheOrExecute(ctx, "global:summary", &rows, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		fetched, err := r.querySummary(ctx, "")
		if err != nil {
			return nil, err
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// querySummary runs the grouped tally over attendances joined through
// sessions to subjects, optionally narrowed by one condition.
func (r *attendanceRepository) querySummary(ctx context.Context, cond string, args ...interface{}) ([]repositories.SummaryRow, error) {
	var rows []repositories.SummaryRow

	query := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.student_id, subjects.code as subject_code, "+
			"COUNT(*) as total_classes, "+
			"COUNT(*) FILTER (WHERE attendances.status = ?) as attended", models.AttendancePresent).
		Joins("JOIN sessions ON attendances.session_id = sessions.id").
		Joins("JOIN subjects ON sessions.subject_id = subjects.id").
		Group("attendances.student_id, subjects.code").
		Order("attendances.student_id, subjects.code")

	if cond != "" {
		query = query.Where(cond, args...)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, translateError(err, "query attendance summary")
	}

	return rows, nil
}
