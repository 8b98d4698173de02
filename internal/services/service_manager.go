package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/cache"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/config"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/events"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	cache     *cache.CacheManager
	config    *config.Config

	// Service instances
	authService         AuthService
	registrationService RegistrationService
	subjectService      SubjectService
	attendanceService   AttendanceService
	reportService       ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheManager *cache.CacheManager, cfg *config.Config) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		cache:     cacheManager,
		config:    cfg,
	}
}

// Initialize builds all service instances.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.shutdown {
		return fmt.Errorf("service manager already shut down")
	}

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator, sm.config.JWT)
	sm.registrationService = NewRegistrationService(sm.repo, sm.logger, sm.validator)
	sm.subjectService = NewSubjectService(sm.repo, sm.logger, sm.validator, sm.publisher, sm.config.QRMediaDir)
	sm.attendanceService = NewAttendanceService(sm.repo, sm.logger, sm.publisher, sm.cache)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.registrationService
}

func (sm *serviceManager) Subject() SubjectService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.subjectService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.attendanceService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}

// HealthCheck verifies the dependencies the services run on.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager shut down")
	}

	return sm.repo.Ping(ctx)
}

// Shutdown releases the event publisher; repository connections are owned by
// the repository manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	sm.logger.Info("Service manager shut down")

	return nil
}
