package dtos

import "strings"

// ApplicationRequest is the payload of POST /add and POST /edit/:id. The form
// tags let the same struct bind url-encoded submissions from the HTML pages.
type ApplicationRequest struct {
	CompanyName string `json:"company_name" form:"company_name" binding:"required"`
	JobRole     string `json:"job_role" form:"job_role" binding:"required"`
	AppliedDate string `json:"applied_date" form:"applied_date" binding:"required"`
	Status      string `json:"status" form:"status" binding:"required"`

	// Optional Fields
	URL   string `json:"url,omitempty" form:"url"`
	Notes string `json:"notes,omitempty" form:"notes"`
}

// Normalize trims surrounding whitespace from every field.
func (r *ApplicationRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobRole = strings.TrimSpace(r.JobRole)
	r.AppliedDate = strings.TrimSpace(r.AppliedDate)
	r.Status = strings.TrimSpace(r.Status)
	r.URL = strings.TrimSpace(r.URL)
	r.Notes = strings.TrimSpace(r.Notes)
}

// MissingFields returns the json names of required fields that are empty.
func (r *ApplicationRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if strings.TrimSpace(r.JobRole) == "" {
		missing = append(missing, "job_role")
	}
	if strings.TrimSpace(r.AppliedDate) == "" {
		missing = append(missing, "applied_date")
	}
	if strings.TrimSpace(r.Status) == "" {
		missing = append(missing, "status")
	}
	return missing
}

// Result is the body of every mutation response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Summary is the body of GET /api/summary.
type Summary struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}
