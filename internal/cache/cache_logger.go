package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// failing the caller.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of failing the caller.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateAttendanceCache drops every summary that a newly marked
// attendance row could change: the student's rows, the subject's rows and
// the global report.
func InvalidateAttendanceCache(ctx context.Context, cm *CacheManager, studentID string, subjectID uint) {
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("student:%s:*", studentID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("subject:%d:*", subjectID))
	SafeInvalidatePattern(ctx, cm.Stats, "global:*")
}

// InvalidateSubjectCache drops cached subject lookups after subject or
// session mutations.
func InvalidateSubjectCache(ctx context.Context, cm *CacheManager, subjectID uint, subjectCode string) {
	SafeDelete(ctx, cm.Subject,
		fmt.Sprintf("id:%d", subjectID),
		fmt.Sprintf("code:%s", subjectCode))
	SafeInvalidatePattern(ctx, cm.Session, fmt.Sprintf("subject:%d:*", subjectID))
}
