package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

type registrationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRegistrationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) RegistrationService {
	return &registrationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// RegisterTeacher creates the roster row and its login account in one
// transaction so a failed account insert never leaves an orphan teacher.
func (s *registrationService) RegisterTeacher(ctx context.Context, req *RegisterTeacherRequest) (*models.Teacher, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher := &models.Teacher{
		ID:         req.TeacherID,
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Teacher().Create(ctx, teacher); err != nil {
			return err
		}

		linkedID := teacher.ID
		user := &models.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         models.RoleTeacher,
			LinkedID:     &linkedID,
			Active:       true,
		}
		return txRepo.User().Create(ctx, user)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, s.duplicateError(ctx, req.Username, req.Email)
		}
		return nil, fmt.Errorf("failed to register teacher: %w", err)
	}

	s.logger.Info("Teacher registered", "teacher_id", teacher.ID, "username", req.Username)

	return teacher, nil
}

// RegisterStudent mirrors RegisterTeacher for the student roster.
func (s *registrationService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		ID:         req.StudentID,
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Student().Create(ctx, student); err != nil {
			return err
		}

		linkedID := student.ID
		user := &models.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
			LinkedID:     &linkedID,
			Active:       true,
		}
		return txRepo.User().Create(ctx, user)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, s.duplicateError(ctx, req.Username, req.Email)
		}
		return nil, fmt.Errorf("failed to register student: %w", err)
	}

	s.logger.Info("Student registered", "student_id", student.ID, "username", req.Username)

	return student, nil
}

func (s *registrationService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.Teacher().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (s *registrationService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// duplicateError decides which unique constraint tripped by probing the
// username, since the translated driver error no longer says.
func (s *registrationService) duplicateError(ctx context.Context, username, email string) error {
	if _, err := s.repo.User().GetByUsername(ctx, username); err == nil {
		return ErrDuplicateUsername
	}
	return fmt.Errorf("id or email %q already registered: %w", email, ErrConflict)
}
