package handler

import (
	"net/http"
	"time"
)

// GetAssignments lists the company's shift assignments for one date. The date
// query parameter defaults to today in UTC.
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		var err error
		date, err = time.Parse(time.DateOnly, dateParam)
		if err != nil {
			h.errorResponse(w, r, "invalid date")
			return
		}
	} else {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	assignments, err := h.repository.ListAssignments(h.companyID(r), date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift assignments fetched", assignments)
}
