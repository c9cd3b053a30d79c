package browser

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

type fakeAPI struct {
	mu sync.Mutex

	summary    *dtos.Summary
	summaryErr error
	apps       []models.Application
	listErr    error
	addResult  *dtos.Result
	addErr     error
	delResult  *dtos.Result
	delErr     error

	listCalls []string
	added     []dtos.ApplicationRequest
	deleted   []uint
}

func (f *fakeAPI) Summary(context.Context) (*dtos.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summary, f.summaryErr
}

func (f *fakeAPI) ListApplications(_ context.Context, sort, order string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, sort+" "+order)
	return append([]models.Application(nil), f.apps...), f.listErr
}

func (f *fakeAPI) AddApplication(_ context.Context, req dtos.ApplicationRequest) (*dtos.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, req)
	return f.addResult, f.addErr
}

func (f *fakeAPI) DeleteApplication(_ context.Context, id uint) (*dtos.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.delResult, f.delErr
}

type fakeView struct {
	mu sync.Mutex

	summaries []Summary
	grids     []Grid
	active    []string
	routes    []string
}

func (v *fakeView) ShowSummary(s Summary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summaries = append(v.summaries, s)
}

func (v *fakeView) MarkActive(filter string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = append(v.active, filter)
}

func (v *fakeView) ShowGrid(g Grid) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.grids = append(v.grids, g)
}

func (v *fakeView) Navigate(route string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.routes = append(v.routes, route)
}

func (v *fakeView) lastGrid() Grid {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grids[len(v.grids)-1]
}

func (v *fakeView) navigated() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.routes...)
}

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (c *fakeConfirmer) Confirm(context.Context, string) bool {
	c.asked++
	return c.answer
}

type harness struct {
	api      *fakeAPI
	view     *fakeView
	confirm  *fakeConfirmer
	notifier *Notifier
	ctrl     *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		api: &fakeAPI{
			summary:   &dtos.Summary{Total: 0, ByStatus: map[string]int64{}},
			apps:      sampleApplications(),
			addResult: &dtos.Result{Success: true},
			delResult: &dtos.Result{Success: true},
		},
		view:     &fakeView{},
		confirm:  &fakeConfirmer{answer: true},
		notifier: NewNotifierWithTimings(time.Minute, time.Millisecond),
	}
	h.ctrl = NewController(h.api, h.view, h.confirm, h.notifier, zap.NewNop())
	h.ctrl.SetRedirectDelay(time.Millisecond)
	return h
}

func TestLoadSummary(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.api.summary = &dtos.Summary{Total: 5, ByStatus: map[string]int64{models.StatusOffer: 2}}

	h.ctrl.LoadSummary(context.Background())
	require.Len(t, h.view.summaries, 1)

	offer, _ := h.view.summaries[0].Slot(models.StatusOffer)
	require.EqualValues(t, 2, offer.Count)
	total, _ := h.view.summaries[0].Slot(FilterAll)
	require.EqualValues(t, 5, total.Count)
	require.True(t, total.Active)
	denied, _ := h.view.summaries[0].Slot(models.StatusDenied)
	require.Zero(t, denied.Count)

	// A failed load leaves the previous display alone.
	h.api.summaryErr = errors.New("connection refused")
	h.ctrl.LoadSummary(context.Background())
	require.Len(t, h.view.summaries, 1)
	require.Empty(t, h.notifier.Active())
}

func TestLoadApplicationsReplacesWorkingSet(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	h.ctrl.SetSort(ctx, "company_name", "asc")
	state := h.ctrl.State()
	require.Equal(t, sampleApplications(), state.AllApplications)
	require.Equal(t, state.AllApplications, state.FilteredApplications)
	require.Equal(t, []string{"company_name asc"}, h.api.listCalls)
	require.Len(t, h.view.lastGrid().Cards, 4)

	h.api.apps = sampleApplications()[:1]
	h.ctrl.LoadApplications(ctx)
	require.Len(t, h.ctrl.State().AllApplications, 1)

	// Failures keep the previous working set.
	h.api.listErr = errors.New("timeout")
	grids := len(h.view.grids)
	h.ctrl.LoadApplications(ctx)
	require.Len(t, h.ctrl.State().AllApplications, 1)
	require.Len(t, h.view.grids, grids)
}

func TestStatusFilterAndSearch(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.Enter(context.Background(), RouteList)

	h.ctrl.SetStatusFilter(models.StatusOffer)
	require.Equal(t, []string{models.StatusOffer}, h.view.active)
	require.Equal(t, []uint{1, 4}, ids(h.ctrl.State().FilteredApplications))

	h.ctrl.SetSearchTerm("DATA")
	require.Equal(t, []uint{4}, ids(h.ctrl.State().FilteredApplications))

	h.ctrl.SetStatusFilter("")
	require.Equal(t, FilterAll, h.ctrl.State().ActiveStatusFilter)
	require.Equal(t, []uint{4}, ids(h.ctrl.State().FilteredApplications))

	h.ctrl.SetSearchTerm("nothing matches")
	grid := h.view.lastGrid()
	require.NotNil(t, grid.Empty)
	require.Empty(t, grid.Cards)

	h.ctrl.ClearSearch()
	require.Len(t, h.view.lastGrid().Cards, 4)

	// Filter state survives a reload.
	h.ctrl.SetStatusFilter(models.StatusDenied)
	h.ctrl.LoadApplications(context.Background())
	require.Equal(t, models.StatusDenied, h.ctrl.State().ActiveStatusFilter)
}

func TestRenderNumbersGrids(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.LoadApplications(context.Background())
	h.ctrl.Render()
	require.Len(t, h.view.grids, 2)
	require.Less(t, h.view.grids[0].Seq, h.view.grids[1].Seq)
	require.NotZero(t, h.view.grids[0].Seq)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ctrl.SetSearchTerm("a")
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{}
	for _, g := range h.view.grids {
		require.False(t, seen[g.Seq], "sequence %d reused", g.Seq)
		seen[g.Seq] = true
	}
	require.Len(t, seen, 22)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.confirm.answer = false

	err := h.ctrl.DeleteApplication(context.Background(), 3)
	require.ErrorIs(t, err, ErrNotConfirmed)
	require.Equal(t, 1, h.confirm.asked)
	require.Empty(t, h.api.deleted)
	require.Empty(t, h.notifier.Active())
}

func TestDeleteReloadsOnSuccess(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.Enter(context.Background(), RouteList)
	calls := len(h.api.listCalls)
	summaries := len(h.view.summaries)

	require.NoError(t, h.ctrl.DeleteApplication(context.Background(), 3))
	require.Equal(t, []uint{3}, h.api.deleted)
	require.Len(t, h.api.listCalls, calls+1)
	require.Len(t, h.view.summaries, summaries+1)

	active := h.notifier.Active()
	require.Len(t, active, 1)
	require.Equal(t, NotifySuccess, active[0].Kind)
}

func TestDeleteFailuresLeaveStateUnchanged(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.Enter(context.Background(), RouteList)
	before := h.ctrl.State()
	calls := len(h.api.listCalls)

	h.api.delResult = &dtos.Result{Success: false, Message: "locked"}
	err := h.ctrl.DeleteApplication(context.Background(), 3)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, "locked", serverErr.Message)

	h.api.delErr = errors.New("network down")
	require.Error(t, h.ctrl.DeleteApplication(context.Background(), 3))

	require.Equal(t, before, h.ctrl.State())
	require.Len(t, h.api.listCalls, calls)

	active := h.notifier.Active()
	require.Len(t, active, 2)
	require.Equal(t, "Error deleting application: locked", active[0].Message)
	require.Equal(t, "Error deleting application", active[1].Message)
	require.Equal(t, NotifyError, active[1].Kind)
}

func TestSubmitAddValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.ctrl.SubmitAdd(context.Background(), FormValues{
		"company_name": "",
		"job_role":     "SRE",
		"applied_date": "2024-03-01",
		"status":       models.StatusWaiting,
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, h.api.added)

	active := h.notifier.Active()
	require.Len(t, active, 1)
	require.Equal(t, NotifyError, active[0].Kind)
	require.Equal(t, "Please fill in all required fields", active[0].Message)
}

func TestSubmitAddSuccessNavigates(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	values := FormValues{
		"company_name": "Acme",
		"job_role":     "SRE",
		"applied_date": "2024-03-01",
		"status":       models.StatusOffer,
		"notes":        "referral",
	}
	require.NoError(t, h.ctrl.SubmitAdd(context.Background(), values))
	require.Len(t, h.api.added, 1)
	require.Equal(t, "Acme", h.api.added[0].CompanyName)
	require.Equal(t, "referral", h.api.added[0].Notes)

	require.Eventually(t, func() bool {
		routes := h.view.navigated()
		return len(routes) == 1 && routes[0] == RouteList
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitAddServerFailureStays(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.api.addResult = &dtos.Result{Success: false, Message: "Missing required fields: status"}

	err := h.ctrl.SubmitAdd(context.Background(), FormValues{
		"company_name": "Acme",
		"job_role":     "SRE",
		"applied_date": "2024-03-01",
		"status":       models.StatusOffer,
	})
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)

	time.Sleep(20 * time.Millisecond)
	require.Empty(t, h.view.navigated())
	require.Equal(t, "Error adding application: Missing required fields: status", h.notifier.Active()[0].Message)
}
