package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/cache"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type subjectRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewSubjectPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SubjectRepository {
	return &subjectRepository{db: db, cache: cacheManager}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return translateError(err, "create subject")
	}
	return nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject

	if err := r.db.WithContext(ctx).
		First(&subject, id).Error; err != nil {
		return nil, translateError(err, "get subject by id")
	}

	return &subject, nil
}

// GetByCode is on the QR scan hot path, so it goes through the subject cache.
func (r *subjectRepository) GetByCode(ctx context.Context, code string) (*models.Subject, error) {
	var subject models.Subject

	cacheKey := fmt.Sprintf("code:%s", code)
	err := r.cache.Subject.CacheOrExecute(ctx, cacheKey, &subject, cache.SubjectCacheConfig.TTL, func() (interface{}, error) {
		var s models.Subject
		if err := r.db.WithContext(ctx).
			Where("code = ?", code).
			First(&s).Error; err != nil {
			return nil, translateError(err, "get subject by code")
		}
		return &s, nil
	})
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

func (r *subjectRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Subject, error) {
	var subjects []models.Subject

	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("code").
		Find(&subjects).Error; err != nil {
		return nil, translateError(err, "list subjects by teacher")
	}

	return subjects, nil
}
