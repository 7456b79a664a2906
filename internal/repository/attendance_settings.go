package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// GetAttendanceSettings returns the company's settings row, creating it with
// defaults on first read.
func (r *Repository) GetAttendanceSettings(companyID int64) (*domain.AttendanceSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings, err := r.getAttendanceSettings(ctx, companyID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	settings = domain.DefaultAttendanceSettings(companyID)
	ipAddresses, err := json.Marshal(settings.ClockInIPAddresses)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO attendance_settings (
			company_id, allow_shift_change_request, save_clock_in_location,
			allow_employee_self_clock_in_out, auto_clock_in_first_login,
			clock_in_location_radius_check, clock_in_location_radius_value,
			allow_clock_in_outside_shift, clock_in_ip_check, clock_in_ip_addresses,
			send_monthly_report_email, week_starts_from, attendance_reminder_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO NOTHING
		RETURNING id, created_at
	`
	args := []any{
		settings.CompanyID, settings.AllowShiftChangeRequest, settings.SaveClockInLocation,
		settings.AllowEmployeeSelfClockInOut, settings.AutoClockInFirstLogin,
		settings.ClockInLocationRadiusCheck, settings.ClockInLocationRadiusValue,
		settings.AllowClockInOutsideShift, settings.ClockInIPCheck, ipAddresses,
		settings.SendMonthlyReportEmail, settings.WeekStartsFrom, settings.AttendanceReminderStatus,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &settings.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// a concurrent first read already inserted the row
			return r.getAttendanceSettings(ctx, companyID)
		}
		return nil, err
	}

	return settings, nil
}

func (r *Repository) getAttendanceSettings(ctx context.Context, companyID int64) (*domain.AttendanceSettings, error) {
	query := `
		SELECT
			id, allow_shift_change_request, save_clock_in_location,
			allow_employee_self_clock_in_out, auto_clock_in_first_login,
			clock_in_location_radius_check, clock_in_location_radius_value,
			allow_clock_in_outside_shift, clock_in_ip_check, clock_in_ip_addresses,
			send_monthly_report_email, week_starts_from, attendance_reminder_status,
			created_at
		FROM attendance_settings WHERE company_id = $1
	`

	settings := &domain.AttendanceSettings{
		CompanyID: companyID,
	}

	var ipAddresses []byte
	dst := []any{
		&settings.ID, &settings.AllowShiftChangeRequest, &settings.SaveClockInLocation,
		&settings.AllowEmployeeSelfClockInOut, &settings.AutoClockInFirstLogin,
		&settings.ClockInLocationRadiusCheck, &settings.ClockInLocationRadiusValue,
		&settings.AllowClockInOutsideShift, &settings.ClockInIPCheck, &ipAddresses,
		&settings.SendMonthlyReportEmail, &settings.WeekStartsFrom, &settings.AttendanceReminderStatus,
		&settings.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ipAddresses, &settings.ClockInIPAddresses); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpdateAttendanceSettings(settings *domain.AttendanceSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ipAddresses, err := json.Marshal(settings.ClockInIPAddresses)
	if err != nil {
		return err
	}

	query := `
		UPDATE attendance_settings
		SET
			allow_shift_change_request = $1,
			save_clock_in_location = $2,
			allow_employee_self_clock_in_out = $3,
			auto_clock_in_first_login = $4,
			clock_in_location_radius_check = $5,
			clock_in_location_radius_value = $6,
			allow_clock_in_outside_shift = $7,
			clock_in_ip_check = $8,
			clock_in_ip_addresses = $9,
			send_monthly_report_email = $10,
			week_starts_from = $11,
			attendance_reminder_status = $12
		WHERE company_id = $13
	`
	args := []any{
		settings.AllowShiftChangeRequest, settings.SaveClockInLocation,
		settings.AllowEmployeeSelfClockInOut, settings.AutoClockInFirstLogin,
		settings.ClockInLocationRadiusCheck, settings.ClockInLocationRadiusValue,
		settings.AllowClockInOutsideShift, settings.ClockInIPCheck, ipAddresses,
		settings.SendMonthlyReportEmail, settings.WeekStartsFrom, settings.AttendanceReminderStatus,
		settings.CompanyID,
	}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
