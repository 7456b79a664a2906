package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// ValidateShiftTimes checks that both times parse as HH:MM:SS. No ordering is
// imposed between them: an end time earlier than the start time means the
// shift spans midnight.
func ValidateShiftTimes(shift *domain.Shift) error {
	if _, err := time.Parse("15:04:05", shift.StartTime); err != nil {
		return fmt.Errorf("shift start time is not a valid HH:MM:SS value: %w", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("15:04:05", shift.EndTime); err != nil {
		return fmt.Errorf("shift end time is not a valid HH:MM:SS value: %w", domain.ErrInvalidInput)
	}

	return nil
}

// NormalizeWorkingDays validates every token against the weekday set and
// drops duplicates while keeping the first occurrence's position.
func NormalizeWorkingDays(days []string) ([]string, error) {
	normalized := make([]string, 0, len(days))

	for _, day := range days {
		if !slices.Contains(domain.Weekdays, day) {
			return nil, fmt.Errorf("unknown weekday %q: %w", day, domain.ErrInvalidInput)
		}
		if slices.Contains(normalized, day) {
			continue
		}
		normalized = append(normalized, day)
	}

	return normalized, nil
}

// MissingShiftIDs returns the sequence entries that do not appear in the
// company's shift ids, preserving sequence order.
func MissingShiftIDs(sequence []int64, known []int64) []int64 {
	missing := make([]int64, 0)
	for _, id := range sequence {
		if !slices.Contains(known, id) && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	return missing
}
