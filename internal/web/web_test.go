package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

func TestTemplatesRender(t *testing.T) {
	t.Parallel()

	tmpl, err := Templates()
	require.NoError(t, err)

	page, err := NewIndexPage(&dtos.Summary{Total: 1, ByStatus: map[string]int64{models.StatusOffer: 1}},
		[]models.Application{{ID: 1, CompanyName: `Acme "quoted"`, JobRole: "SRE", Status: models.StatusOffer}},
		"", "", "company_name", "asc")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&b, "index.html", page))
	require.Contains(t, b.String(), "Acme &#34;quoted&#34;")
	require.Contains(t, b.String(), `<option value="company_name" selected>`)
	require.Contains(t, b.String(), "summary-card clickable active")

	b.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&b, "form.html", NewAddPage(dtos.ApplicationRequest{}, "")))
	require.Contains(t, b.String(), `<option value="Waiting for hearback" selected>`)
}

func TestEditPageKeepsUnknownStatus(t *testing.T) {
	t.Parallel()

	page := NewEditPage(&models.Application{ID: 4, CompanyName: "Acme", Status: "Ghosted"}, "")
	require.Equal(t, "/edit/4", page.Action)
	require.Equal(t, "Ghosted", page.Statuses[len(page.Statuses)-1])
	require.Len(t, page.Statuses, len(models.Statuses)+1)

	page = NewEditPage(&models.Application{ID: 4, Status: models.StatusOffer}, "")
	require.Equal(t, models.Statuses, page.Statuses)
}
