package handler

import (
	"net/http"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.ListEmployees(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		JobTitle string `json:"jobTitle"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		CompanyID: h.companyID(r),
		FullName:  req.FullName,
		Username:  req.Username,
		Email:     req.Email,
		JobTitle:  req.JobTitle,
		IsActive:  true,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "create", "employee", employee.ID, employee)
	h.successResponse(w, r, "employee created", employee)
}
