package rotation

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// fakeStore keeps assignments in a map keyed by (employee, date) so the
// reconcile semantics can be exercised without a database.
type fakeStore struct {
	shiftIDs    []int64
	assignments map[string]int64
	failFor     map[int64]error
}

func newFakeStore(shiftIDs ...int64) *fakeStore {
	return &fakeStore{
		shiftIDs:    shiftIDs,
		assignments: make(map[string]int64),
		failFor:     make(map[int64]error),
	}
}

func (s *fakeStore) key(employeeID int64, date time.Time) string {
	return date.Format(time.DateOnly) + "#" + strconv.FormatInt(employeeID, 10)
}

func (s *fakeStore) ListShiftIDs(companyID int64) ([]int64, error) {
	return s.shiftIDs, nil
}

func (s *fakeStore) ReconcileAssignment(companyID int64, employeeID int64, shiftID int64, date time.Time, replace bool) (domain.AssignmentOutcome, error) {
	if err := s.failFor[employeeID]; err != nil {
		return domain.OutcomeFailed, err
	}

	key := s.key(employeeID, date)
	if _, exists := s.assignments[key]; exists {
		if !replace {
			return domain.OutcomeSkipped, nil
		}
		s.assignments[key] = shiftID
		return domain.OutcomeReplaced, nil
	}

	s.assignments[key] = shiftID
	return domain.OutcomeCreated, nil
}

func TestBuildPlanRoundRobin(t *testing.T) {
	sequence := []int64{1, 2, 3}
	employees := []int64{101, 102, 103, 104, 105, 106, 107}

	entries, err := BuildPlan(sequence, employees)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	wantShifts := []int64{1, 2, 3, 1, 2, 3, 1}
	for i, entry := range entries {
		assert.Equal(t, employees[i], entry.EmployeeID)
		assert.Equal(t, wantShifts[i], entry.ShiftID)
	}
}

func TestBuildPlanSingleShiftSequence(t *testing.T) {
	entries, err := BuildPlan([]int64{9}, []int64{1, 2, 3})
	require.NoError(t, err)

	for _, entry := range entries {
		assert.Equal(t, int64(9), entry.ShiftID)
	}
}

func TestBuildPlanEmptyEmployees(t *testing.T) {
	_, err := BuildPlan([]int64{1}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildPlanEmptySequence(t *testing.T) {
	_, err := BuildPlan(nil, []int64{1, 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "rotation has no shifts defined")
}

func TestRunCreatesAssignments(t *testing.T) {
	store := newFakeStore(1, 2)
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		ID:               1,
		CompanyID:        7,
		ShiftsInSequence: []int64{2, 1},
	}
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	report, err := engine.Run(rotation, []int64{11, 12, 13}, date)
	require.NoError(t, err)

	assert.Equal(t, 3, report.AssignmentsCreated)
	require.Len(t, report.Results, 3)
	assert.Equal(t, int64(2), report.Results[0].ShiftID)
	assert.Equal(t, int64(1), report.Results[1].ShiftID)
	assert.Equal(t, int64(2), report.Results[2].ShiftID)
	for _, result := range report.Results {
		assert.Equal(t, domain.OutcomeCreated, result.Outcome)
	}
}

func TestRunReplacePolicyFalseSkipsExisting(t *testing.T) {
	store := newFakeStore(1, 2)
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		CompanyID:            7,
		ReplaceExistingShift: false,
		ShiftsInSequence:     []int64{1, 2},
	}
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	_, err := engine.Run(rotation, []int64{11, 12}, date)
	require.NoError(t, err)

	// the second run must leave the first run's rows untouched
	report, err := engine.Run(rotation, []int64{12, 11}, date)
	require.NoError(t, err)

	assert.Equal(t, 2, report.AssignmentsCreated)
	for _, result := range report.Results {
		assert.Equal(t, domain.OutcomeSkipped, result.Outcome)
	}
	assert.Equal(t, int64(1), store.assignments[store.key(11, date)])
	assert.Equal(t, int64(2), store.assignments[store.key(12, date)])
}

func TestRunReplacePolicyTrueOverwrites(t *testing.T) {
	store := newFakeStore(1, 2)
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		CompanyID:            7,
		ReplaceExistingShift: true,
		ShiftsInSequence:     []int64{1, 2},
	}
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	_, err := engine.Run(rotation, []int64{11, 12}, date)
	require.NoError(t, err)

	// reversing the employee order rotates every assignment
	report, err := engine.Run(rotation, []int64{12, 11}, date)
	require.NoError(t, err)

	for _, result := range report.Results {
		assert.Equal(t, domain.OutcomeReplaced, result.Outcome)
	}
	assert.Equal(t, int64(2), store.assignments[store.key(11, date)])
	assert.Equal(t, int64(1), store.assignments[store.key(12, date)])
}

func TestRunIdempotentWithReplace(t *testing.T) {
	store := newFakeStore(1, 2)
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		CompanyID:            7,
		ReplaceExistingShift: true,
		ShiftsInSequence:     []int64{2, 1},
	}
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	employees := []int64{11, 12, 13}

	first, err := engine.Run(rotation, employees, date)
	require.NoError(t, err)
	second, err := engine.Run(rotation, employees, date)
	require.NoError(t, err)

	assert.Equal(t, first.AssignmentsCreated, second.AssignmentsCreated)
	for i := range first.Results {
		assert.Equal(t, first.Results[i].ShiftID, second.Results[i].ShiftID)
	}
}

func TestRunUnknownShiftInSequence(t *testing.T) {
	store := newFakeStore(1)
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		CompanyID:        7,
		ShiftsInSequence: []int64{1, 99},
	}

	_, err := engine.Run(rotation, []int64{11}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.assignments)
}

func TestRunIsolatesPerEmployeeFailures(t *testing.T) {
	store := newFakeStore(1)
	store.failFor[12] = errors.New("connection reset")
	engine := NewEngine(store)

	rotation := &domain.ShiftRotation{
		CompanyID:        7,
		ShiftsInSequence: []int64{1},
	}
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	report, err := engine.Run(rotation, []int64{11, 12, 13}, date)
	require.NoError(t, err)

	assert.Equal(t, 3, report.AssignmentsCreated)
	assert.Equal(t, domain.OutcomeCreated, report.Results[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, report.Results[1].Outcome)
	assert.Equal(t, domain.OutcomeCreated, report.Results[2].Outcome)
}
