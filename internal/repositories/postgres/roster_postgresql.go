package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return translateError(err, "create teacher")
	}
	return nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	var teacher models.Teacher

	if err := r.db.WithContext(ctx).
		First(&teacher, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get teacher by id")
	}

	return &teacher, nil
}

func (r *teacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher

	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&teachers).Error; err != nil {
		return nil, translateError(err, "list teachers")
	}

	return teachers, nil
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return translateError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student

	if err := r.db.WithContext(ctx).
		First(&student, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get student by id")
	}

	return &student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student

	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&students).Error; err != nil {
		return nil, translateError(err, "list students")
	}

	return students, nil
}
