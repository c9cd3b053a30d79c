package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

type fakeServer struct {
	added   []dtos.ApplicationRequest
	deleted []string
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/applications", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, []string{"asc", "desc"}, r.URL.Query().Get("order"))
		_ = json.NewEncoder(w).Encode([]models.Application{
			{ID: 1, CompanyName: "Acme", JobRole: "SRE", AppliedDate: "2024-03-01", Status: models.StatusOffer, LastUpdated: time.Now()},
			{ID: 2, CompanyName: "Beta", JobRole: "Data Engineer", AppliedDate: "2024-02-01", Status: models.StatusDenied, LastUpdated: time.Now()},
		})
	})
	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(dtos.Summary{Total: 2, ByStatus: map[string]int64{models.StatusOffer: 1, models.StatusDenied: 1}})
	})
	mux.HandleFunc("/add", func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ApplicationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.added = append(f.added, req)
		_ = json.NewEncoder(w).Encode(dtos.Result{Success: true, Message: "Job application added successfully"})
	})
	mux.HandleFunc("/delete/", func(w http.ResponseWriter, r *http.Request) {
		f.deleted = append(f.deleted, strings.TrimPrefix(r.URL.Path, "/delete/"))
		_ = json.NewEncoder(w).Encode(dtos.Result{Success: true, Message: "Job application deleted successfully"})
	})
	return mux
}

func runTracker(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TRACKER_ENV", "test")
	t.Setenv("TRACKER_LOG_FILE", dir+"/tracker.log")
	t.Setenv("AUTOSAVE_PATH", dir+"/autosave.json")

	var out bytes.Buffer
	cmd := (&cmdGlobal{}).command()
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	out, err := runTracker(t, srv, "", "list", "--sort", "company_name", "--status", models.StatusOffer)
	require.NoError(t, err)
	require.Contains(t, out, "Acme")
	require.NotContains(t, out, "Beta")

	out, err = runTracker(t, srv, "", "list", "--sort", "company_name", "--search", "nobody")
	require.NoError(t, err)
	require.Contains(t, out, "No applications found")
}

func TestSummaryCommand(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	out, err := runTracker(t, srv, "", "summary")
	require.NoError(t, err)
	require.Contains(t, out, models.StatusInterview3)
	require.Contains(t, out, "Total")
}

func TestAddCommand(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	_, err := runTracker(t, srv, "", "add", "--company", "Acme")
	require.ErrorContains(t, err, "job_role")
	require.Empty(t, fake.added)

	out, err := runTracker(t, srv, "", "add", "--company", " Acme ", "--role", "SRE", "--date", "2024-03-01")
	require.NoError(t, err)
	require.Contains(t, out, "successfully")
	require.Len(t, fake.added, 1)
	require.Equal(t, "Acme", fake.added[0].CompanyName)
	require.Equal(t, models.StatusWaiting, fake.added[0].Status)
}

func TestDeleteCommand(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	out, err := runTracker(t, srv, "no\n", "delete", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Aborted")
	require.Empty(t, fake.deleted)

	// An empty answer takes the default.
	out, err = runTracker(t, srv, "\n", "delete", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Aborted")
	require.Empty(t, fake.deleted)

	_, err = runTracker(t, srv, "yes\n", "delete", "3")
	require.NoError(t, err)
	require.Equal(t, []string{"3"}, fake.deleted)

	_, err = runTracker(t, srv, "", "delete", "--yes", "4")
	require.NoError(t, err)
	require.Equal(t, []string{"3", "4"}, fake.deleted)

	_, err = runTracker(t, srv, "", "delete", "abc")
	require.Error(t, err)
}
