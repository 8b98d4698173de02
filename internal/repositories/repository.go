package repositories

import "context"

// Repository aggregates every per-entity repository.
type Repository interface {
	User() UserRepository
	Teacher() TeacherRepository
	Student() StudentRepository
	Subject() SubjectRepository
	Session() SessionRepository
	Attendance() AttendanceRepository

	// WithTransaction runs fn against a Repository bound to one database
	// transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
