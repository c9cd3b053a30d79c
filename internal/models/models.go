package models

import (
	"time"
)

// Status values shown on the summary header. The server stores the status as an
// opaque string, so values outside this list are accepted and counted as-is.
const (
	StatusWaiting    = "Waiting for hearback"
	StatusDenied     = "Denied"
	StatusInterview  = "Interview"
	StatusInterview2 = "Interview 2"
	StatusInterview3 = "Interview 3"
	StatusOffer      = "Offer"
)

// Statuses lists the known statuses in display order.
var Statuses = []string{
	StatusWaiting,
	StatusDenied,
	StatusInterview,
	StatusInterview2,
	StatusInterview3,
	StatusOffer,
}

type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	JobRole     string    `gorm:"not null" json:"job_role"`
	AppliedDate string    `gorm:"size:32;not null;index" json:"applied_date"`
	URL         string    `json:"url"`
	Status      string    `gorm:"not null;default:'Waiting for hearback';index" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"-"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	// LastUpdatedText is last_updated as received by a client, in whatever
	// layout the server sent it.
	LastUpdatedText string `gorm:"-" json:"-"`
}

func (Application) TableName() string { return "job_applications" }

// StatusHistory records every status an application has been in.
type StatusHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"index;not null" json:"application_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `gorm:"not null" json:"new_status"`
	ChangedAt     time.Time `gorm:"autoCreateTime" json:"changed_at"`
}

func (StatusHistory) TableName() string { return "status_history" }
