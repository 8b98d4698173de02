package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return translateError(err, "create session")
	}
	return nil
}

func (r *sessionRepository) GetBySubject(ctx context.Context, sessionID, subjectID uint) (*models.Session, error) {
	var session models.Session

	if err := r.db.WithContext(ctx).
		Where("id = ? AND subject_id = ?", sessionID, subjectID).
		First(&session).Error; err != nil {
		return nil, translateError(err, "get session by subject")
	}

	return &session, nil
}

func (r *sessionRepository) ListBySubject(ctx context.Context, subjectID uint) ([]models.Session, error) {
	var sessions []models.Session

	if err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("class_date DESC, start_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, translateError(err, "list sessions by subject")
	}

	return sessions, nil
}

func (r *sessionRepository) UpdateQRCode(ctx context.Context, sessionID uint, qrCode []byte) error {
	result := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("qr_code", qrCode)
	if result.Error != nil {
		return translateError(result.Error, "update session qr code")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update session qr code")
	}
	return nil
}
