package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an application id does not exist.
var ErrNotFound = errors.New("application not found")

const (
	DefaultSort  = "applied_date"
	DefaultOrder = "desc"
)

var sortColumns = map[string]bool{
	"company_name": true,
	"job_role":     true,
	"applied_date": true,
	"status":       true,
	"last_updated": true,
}

// NormalizeSort replaces unknown sort keys and orders with the defaults.
func NormalizeSort(sort, order string) (string, string) {
	if !sortColumns[sort] {
		sort = DefaultSort
	}
	if order != "asc" && order != "desc" {
		order = DefaultOrder
	}
	return sort, order
}

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		DB: db,
	}
}

// List returns every application ordered by the given column.
func (s *ApplicationService) List(ctx context.Context, sort, order string) ([]models.Application, error) {
	sort, order = NormalizeSort(sort, order)

	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sort}, Desc: order == "desc"}).
		Order("id").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return &app, nil
}

// Create stores a new application and opens its status history.
func (s *ApplicationService) Create(ctx context.Context, req *dtos.ApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		CompanyName: req.CompanyName,
		JobRole:     req.JobRole,
		AppliedDate: req.AppliedDate,
		URL:         req.URL,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusHistory{
			ApplicationID: app.ID,
			NewStatus:     app.Status,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// Update replaces every editable field. A status change is appended to the history.
func (s *ApplicationService) Update(ctx context.Context, id uint, req *dtos.ApplicationRequest) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, id).Error; err != nil {
			return err
		}
		oldStatus := app.Status

		app.CompanyName = req.CompanyName
		app.JobRole = req.JobRole
		app.AppliedDate = req.AppliedDate
		app.URL = req.URL
		app.Status = req.Status
		app.Notes = req.Notes
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		if oldStatus == app.Status {
			return nil
		}
		return tx.Create(&models.StatusHistory{
			ApplicationID: app.ID,
			OldStatus:     oldStatus,
			NewStatus:     app.Status,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update application %d: %w", id, err)
	}
	return &app, nil
}

// Delete removes the application and its history. Unknown ids are not an error.
func (s *ApplicationService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}
	return nil
}

// Summary counts applications in total and per status.
func (s *ApplicationService) Summary(ctx context.Context) (*dtos.Summary, error) {
	db := s.DB.WithContext(ctx)

	summary := &dtos.Summary{ByStatus: map[string]int64{}}
	if err := db.Model(&models.Application{}).Count(&summary.Total).Error; err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	for _, row := range rows {
		summary.ByStatus[row.Status] = row.Count
	}
	return summary, nil
}

// History lists the status changes of one application, oldest first.
func (s *ApplicationService) History(ctx context.Context, id uint) ([]models.StatusHistory, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	history := []models.StatusHistory{}
	err := s.DB.WithContext(ctx).
		Where("application_id = ?", id).
		Order("changed_at").
		Order("id").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("status history %d: %w", id, err)
	}
	return history, nil
}
