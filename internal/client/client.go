package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// Client calls the tracker REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL. A zero timeout leaves
// timeouts to the transport.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Summary calls GET /api/summary.
func (c *Client) Summary(ctx context.Context) (*dtos.Summary, error) {
	var summary dtos.Summary
	if err := c.getJSON(ctx, "/api/summary", &summary); err != nil {
		return nil, err
	}
	if summary.ByStatus == nil {
		summary.ByStatus = map[string]int64{}
	}
	return &summary, nil
}

// ListApplications calls GET /api/applications.
func (c *Client) ListApplications(ctx context.Context, sort, order string) ([]models.Application, error) {
	q := url.Values{}
	q.Set("sort", sort)
	q.Set("order", order)

	var records []record
	if err := c.getJSON(ctx, "/api/applications?"+q.Encode(), &records); err != nil {
		return nil, err
	}

	apps := make([]models.Application, 0, len(records))
	for _, r := range records {
		apps = append(apps, r.application())
	}
	return apps, nil
}

// GetApplication calls GET /api/applications/:id.
func (c *Client) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	var r record
	if err := c.getJSON(ctx, "/api/applications/"+strconv.FormatUint(uint64(id), 10), &r); err != nil {
		return nil, err
	}
	app := r.application()
	return &app, nil
}

// History calls GET /api/applications/:id/history.
func (c *Client) History(ctx context.Context, id uint) ([]models.StatusHistory, error) {
	history := []models.StatusHistory{}
	if err := c.getJSON(ctx, "/api/applications/"+strconv.FormatUint(uint64(id), 10)+"/history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AddApplication calls POST /add. A server-side rejection is returned as a
// Result with Success false, not as an error.
func (c *Client) AddApplication(ctx context.Context, req dtos.ApplicationRequest) (*dtos.Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.postResult(ctx, "/add", body)
}

// DeleteApplication calls POST /delete/:id.
func (c *Client) DeleteApplication(ctx context.Context, id uint) (*dtos.Result, error) {
	return c.postResult(ctx, "/delete/"+strconv.FormatUint(uint64(id), 10), nil)
}

// record is an application on the wire. last_updated stays text: servers
// differ in the timestamp layout they send, and null url or notes decode as "".
type record struct {
	ID          uint   `json:"id"`
	CompanyName string `json:"company_name"`
	JobRole     string `json:"job_role"`
	AppliedDate string `json:"applied_date"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	LastUpdated string `json:"last_updated"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (r record) application() models.Application {
	app := models.Application{
		ID:              r.ID,
		CompanyName:     r.CompanyName,
		JobRole:         r.JobRole,
		AppliedDate:     r.AppliedDate,
		URL:             r.URL,
		Status:          r.Status,
		Notes:           r.Notes,
		LastUpdatedText: r.LastUpdated,
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, r.LastUpdated); err == nil {
			app.LastUpdated = ts
			break
		}
	}
	return app
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postResult(ctx context.Context, path string, body []byte) (*dtos.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	// Failures carry a Result body too, so decode regardless of the status code.
	var result dtos.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("POST %s: HTTP %d: decode response: %w", path, resp.StatusCode, err)
	}
	if !result.Success && result.Message == "" {
		result.Message = http.StatusText(resp.StatusCode)
	}
	return &result, nil
}
