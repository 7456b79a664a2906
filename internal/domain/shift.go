package domain

import "time"

// Weekday tokens accepted in a shift's working-day set.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Shift struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyID"`
	ShiftName   string    `json:"shiftName"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	WorkingDays []string  `json:"workingDays"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
