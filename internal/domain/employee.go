package domain

import "time"

type Employee struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"companyID"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	JobTitle  string    `json:"jobTitle"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
