package web

import (
	"embed"
	"html/template"

	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// IndexPage is the data of the list view.
type IndexPage struct {
	Title       string
	Summary     browser.Summary
	Grid        template.HTML
	Status      string
	Search      string
	Sort        string
	Order       string
	SortOptions []browser.SortOption
}

// NewIndexPage renders the grid of the filtered applications and assembles the page.
func NewIndexPage(summary *dtos.Summary, apps []models.Application, status, search, sort, order string) (IndexPage, error) {
	if status == "" {
		status = browser.FilterAll
	}

	grid, err := browser.GridHTML(browser.BuildGrid(browser.Filter(apps, status, search)))
	if err != nil {
		return IndexPage{}, err
	}

	return IndexPage{
		Title:       "Applications",
		Summary:     browser.BuildSummary(summary, status),
		Grid:        grid,
		Status:      status,
		Search:      search,
		Sort:        sort,
		Order:       order,
		SortOptions: browser.SortOptions,
	}, nil
}

// FormPage is the data of the add and edit views.
type FormPage struct {
	Title       string
	Action      string
	SubmitLabel string
	Values      dtos.ApplicationRequest
	Statuses    []string
	Error       string
}

// NewAddPage returns the add form, preselecting the first status.
func NewAddPage(values dtos.ApplicationRequest, errMsg string) FormPage {
	if values.Status == "" {
		values.Status = models.StatusWaiting
	}
	return FormPage{
		Title:       "Add New Job Application",
		Action:      browser.RouteAdd,
		SubmitLabel: "Add Application",
		Values:      values,
		Statuses:    statusOptions(values.Status),
		Error:       errMsg,
	}
}

// NewEditPage returns the edit form of an application.
func NewEditPage(app *models.Application, errMsg string) FormPage {
	return NewEditFormPage(app.ID, dtos.ApplicationRequest{
		CompanyName: app.CompanyName,
		JobRole:     app.JobRole,
		AppliedDate: app.AppliedDate,
		Status:      app.Status,
		URL:         app.URL,
		Notes:       app.Notes,
	}, errMsg)
}

// NewEditFormPage returns the edit form filled with submitted values.
func NewEditFormPage(id uint, values dtos.ApplicationRequest, errMsg string) FormPage {
	return FormPage{
		Title:       "Edit Job Application",
		Action:      browser.EditRoute(id),
		SubmitLabel: "Save Changes",
		Values:      values,
		Statuses:    statusOptions(values.Status),
		Error:       errMsg,
	}
}

// statusOptions keeps a stored status selectable even when it is not one of
// the known values.
func statusOptions(current string) []string {
	options := append([]string(nil), models.Statuses...)
	for _, s := range options {
		if s == current {
			return options
		}
	}
	if current != "" {
		options = append(options, current)
	}
	return options
}
