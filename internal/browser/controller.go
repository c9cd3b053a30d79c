package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

var (
	// ErrValidation is returned when the add form misses a required field.
	ErrValidation = errors.New("missing required fields")
	// ErrNotConfirmed is returned when the user declines a delete.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// ServerError is a failure reported by the server with success=false.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server reported failure: " + e.Message
}

// RedirectDelay is how long the add form stays visible after a successful submit.
const RedirectDelay = time.Second

// API is the server the browser talks to.
type API interface {
	Summary(ctx context.Context) (*dtos.Summary, error)
	ListApplications(ctx context.Context, sort, order string) ([]models.Application, error)
	AddApplication(ctx context.Context, req dtos.ApplicationRequest) (*dtos.Result, error)
	DeleteApplication(ctx context.Context, id uint) (*dtos.Result, error)
}

// View is the display adapter. Every call replaces what was shown before.
type View interface {
	ShowSummary(summary Summary)
	MarkActive(filter string)
	ShowGrid(grid Grid)
	Navigate(route string)
}

// Confirmer asks the user an explicit yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// Controller owns the browser state and runs the list and add flows.
type Controller struct {
	api      API
	view     View
	confirm  Confirmer
	notifier *Notifier
	log      *zap.Logger

	redirectDelay time.Duration

	mu        sync.Mutex
	state     State
	renderSeq uint64
}

func NewController(api API, view View, confirm Confirmer, notifier *Notifier, log *zap.Logger) *Controller {
	return &Controller{
		api:           api,
		view:          view,
		confirm:       confirm,
		notifier:      notifier,
		log:           log,
		redirectDelay: RedirectDelay,
		state:         NewState(),
	}
}

// SetRedirectDelay overrides the delay between a successful add and navigation.
func (c *Controller) SetRedirectDelay(d time.Duration) {
	c.redirectDelay = d
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Enter runs the hooks of a route. Entering the list loads summary and applications.
func (c *Controller) Enter(ctx context.Context, route string) {
	if route != RouteList {
		return
	}
	c.LoadSummary(ctx)
	c.LoadApplications(ctx)
}

// LoadSummary fetches the counts and shows them. Failures are only logged.
func (c *Controller) LoadSummary(ctx context.Context) {
	counts, err := c.api.Summary(ctx)
	if err != nil {
		c.log.Error("error loading summary", zap.Error(err))
		return
	}

	c.mu.Lock()
	active := c.state.ActiveStatusFilter
	c.mu.Unlock()

	c.view.ShowSummary(BuildSummary(counts, active))
}

// LoadApplications replaces the working set with the server list for the
// current sort controls and renders it unfiltered.
func (c *Controller) LoadApplications(ctx context.Context) {
	c.mu.Lock()
	sort, order := c.state.SortKey, c.state.SortOrder
	c.mu.Unlock()

	apps, err := c.api.ListApplications(ctx, sort, order)
	if err != nil {
		c.log.Error("error loading applications", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.state.AllApplications = apps
	c.state.FilteredApplications = append([]models.Application(nil), apps...)
	c.mu.Unlock()

	c.Render()
}

// SetSort changes the sort controls and reloads the list.
func (c *Controller) SetSort(ctx context.Context, key, order string) {
	c.mu.Lock()
	c.state.SortKey = key
	c.state.SortOrder = order
	c.mu.Unlock()

	c.LoadApplications(ctx)
}

// SetSearchTerm updates the search box value and re-filters.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.state.SearchTerm = term
	c.mu.Unlock()

	c.ApplyFilters()
}

func (c *Controller) ClearSearch() {
	c.SetSearchTerm("")
}

// SetStatusFilter selects a summary slot; an empty status selects all.
func (c *Controller) SetStatusFilter(status string) {
	if status == "" {
		status = FilterAll
	}

	c.mu.Lock()
	c.state.ActiveStatusFilter = status
	c.mu.Unlock()

	c.view.MarkActive(status)
	c.ApplyFilters()
}

// ApplyFilters recomputes the filtered view from the working set and renders it.
func (c *Controller) ApplyFilters() {
	c.mu.Lock()
	c.state.FilteredApplications = Filter(c.state.AllApplications, c.state.ActiveStatusFilter, c.state.SearchTerm)
	c.mu.Unlock()

	c.Render()
}

// Render shows the filtered view.
func (c *Controller) Render() {
	c.mu.Lock()
	grid := BuildGrid(c.state.FilteredApplications)
	c.renderSeq++
	grid.Seq = c.renderSeq
	c.mu.Unlock()

	c.view.ShowGrid(grid)
}

// DeleteApplication removes an application after confirmation and reloads
// summary and list from the server.
func (c *Controller) DeleteApplication(ctx context.Context, id uint) error {
	if !c.confirm.Confirm(ctx, "Are you sure you want to delete this job application? This action cannot be undone.") {
		return ErrNotConfirmed
	}

	result, err := c.api.DeleteApplication(ctx, id)
	if err != nil {
		c.log.Error("error deleting application", zap.Uint("id", id), zap.Error(err))
		c.notifier.Error("Error deleting application")
		return err
	}
	if !result.Success {
		c.notifier.Error("Error deleting application: " + result.Message)
		return &ServerError{Message: result.Message}
	}

	c.notifier.Success("Application deleted successfully!")
	c.LoadSummary(ctx)
	c.LoadApplications(ctx)
	return nil
}

// FormValues is the flat field name to value mapping of the add form.
type FormValues map[string]string

// Request converts the form values to the add payload.
func (v FormValues) Request() dtos.ApplicationRequest {
	return dtos.ApplicationRequest{
		CompanyName: v["company_name"],
		JobRole:     v["job_role"],
		AppliedDate: v["applied_date"],
		Status:      v["status"],
		URL:         v["url"],
		Notes:       v["notes"],
	}
}

// SubmitAdd validates and posts the add form. On success the view navigates
// to the list after the redirect delay.
func (c *Controller) SubmitAdd(ctx context.Context, values FormValues) error {
	req := values.Request()
	if missing := req.MissingFields(); len(missing) > 0 {
		c.notifier.Error("Please fill in all required fields")
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	result, err := c.api.AddApplication(ctx, req)
	if err != nil {
		c.log.Error("error adding application", zap.Error(err))
		c.notifier.Error("Error adding application")
		return err
	}
	if !result.Success {
		c.notifier.Error("Error adding application: " + result.Message)
		return &ServerError{Message: result.Message}
	}

	c.notifier.Success("Job application added successfully!")
	time.AfterFunc(c.redirectDelay, func() {
		c.view.Navigate(RouteList)
	})
	return nil
}
