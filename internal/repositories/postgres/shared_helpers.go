package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

// translateError maps gorm errors onto the repository sentinels so callers
// can use errors.Is without importing gorm. Duplicate detection relies on
// gorm's TranslateError option being enabled on the connection.
func translateError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
