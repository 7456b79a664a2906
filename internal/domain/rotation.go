package domain

import "time"

// ShiftRotation is an ordered template of shift ids. The order defines the
// round-robin position used when the rotation is run against an employee list.
type ShiftRotation struct {
	ID                   int64     `json:"id"`
	CompanyID            int64     `json:"companyID"`
	RotationName         string    `json:"rotationName"`
	RotationFrequency    string    `json:"rotationFrequency"`
	ReplaceExistingShift bool      `json:"replaceExistingShift"`
	ShiftsInSequence     []int64   `json:"shiftsInSequence"`
	CreatedAt            time.Time `json:"createdAt"`
}
