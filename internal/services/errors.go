package services

import (
	"errors"
	"fmt"
)

// Base errors that handlers map onto HTTP status codes.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
)

// Domain errors wrapping the base ones so errors.Is works on both levels.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	ErrRoleMismatch       = fmt.Errorf("account does not hold the required role: %w", ErrForbidden)
	ErrAccountDisabled    = fmt.Errorf("account is disabled: %w", ErrForbidden)

	ErrTeacherNotFound = fmt.Errorf("teacher not found: %w", ErrNotFound)
	ErrStudentNotFound = fmt.Errorf("student not found: %w", ErrNotFound)
	ErrSubjectNotFound = fmt.Errorf("subject not found: %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("session not found: %w", ErrNotFound)

	// ErrNoAttendanceRecords means a report query matched zero rows.
	ErrNoAttendanceRecords = fmt.Errorf("no attendance records: %w", ErrNotFound)

	ErrDuplicateUsername    = fmt.Errorf("username already taken: %w", ErrConflict)
	ErrDuplicateEmail       = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrDuplicateSubjectCode = fmt.Errorf("subject code already exists: %w", ErrConflict)

	// ErrQRDecodeFailed covers both unreadable images and payloads that do
	// not parse.
	ErrQRDecodeFailed = fmt.Errorf("could not decode a QR code from the image: %w", ErrValidationFailed)
)
