package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func TestValidateShiftTimes(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{"valid day shift", "09:00:00", "17:00:00", false},
		{"overnight night shift", "22:00:00", "06:00:00", false},
		{"start equals end", "09:00:00", "09:00:00", false},
		{"bad start format", "9am", "17:00:00", true},
		{"bad end format", "09:00:00", "late", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := &domain.Shift{StartTime: tt.startTime, EndTime: tt.endTime}
			err := ValidateShiftTimes(shift)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeWorkingDays(t *testing.T) {
	days, err := NormalizeWorkingDays([]string{"Monday", "Tuesday", "Monday", "Friday"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday", "Friday"}, days)
}

func TestNormalizeWorkingDaysRejectsUnknownToken(t *testing.T) {
	_, err := NormalizeWorkingDays([]string{"Monday", "Moonday"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeWorkingDaysEmpty(t *testing.T) {
	days, err := NormalizeWorkingDays(nil)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestMissingShiftIDs(t *testing.T) {
	missing := MissingShiftIDs([]int64{1, 2, 9, 9, 3}, []int64{1, 2, 3})
	assert.Equal(t, []int64{9}, missing)

	assert.Empty(t, MissingShiftIDs([]int64{1, 2}, []int64{1, 2, 3}))
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := GenerateRandomChineseName()
		username := GenerateUsernameFromChineseName(name)
		assert.NotEmpty(t, username)
	}
}
