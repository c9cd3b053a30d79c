package browser

import (
	"strconv"

	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// FilterAll is the status filter that keeps every status.
const FilterAll = "all"

// Client-visible routes.
const (
	RouteList = "/"
	RouteAdd  = "/add"
)

// EditRoute returns the edit page route of an application.
func EditRoute(id uint) string {
	return "/edit/" + strconv.FormatUint(uint64(id), 10)
}

// SortOption is one entry of the sort control.
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the columns the list can be sorted by.
var SortOptions = []SortOption{
	{Value: "applied_date", Label: "Applied Date"},
	{Value: "company_name", Label: "Company"},
	{Value: "job_role", Label: "Role"},
	{Value: "status", Label: "Status"},
	{Value: "last_updated", Label: "Last Updated"},
}

// SortOrders lists the sort directions.
var SortOrders = []SortOption{
	{Value: "desc", Label: "Descending"},
	{Value: "asc", Label: "Ascending"},
}

// State is the working set and filter state owned by a Controller.
type State struct {
	AllApplications      []models.Application
	FilteredApplications []models.Application
	ActiveStatusFilter   string
	SearchTerm           string
	SortKey              string
	SortOrder            string
}

// NewState returns the state of a freshly loaded list view.
func NewState() State {
	return State{
		ActiveStatusFilter: FilterAll,
		SortKey:            "applied_date",
		SortOrder:          "desc",
	}
}

func (s State) clone() State {
	out := s
	out.AllApplications = append([]models.Application(nil), s.AllApplications...)
	out.FilteredApplications = append([]models.Application(nil), s.FilteredApplications...)
	return out
}
