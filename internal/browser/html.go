package browser

import (
	"html/template"
	"io"
	"strings"
)

// The template escapes by context, so values are safe inside attributes too.
var gridTemplate = template.Must(template.New("grid").Parse(`{{- if .Empty -}}
<div class="empty-state">
    <h2>{{ .Empty.Title }}</h2>
    <p>{{ .Empty.Message }}</p>
    <a href="{{ .Empty.ActionHref }}" class="btn btn-primary">{{ .Empty.ActionLabel }}</a>
</div>
{{- else -}}
{{- range .Cards }}
<div class="application-card" data-status="{{ .Status }}" data-app-id="{{ .ID }}">
    <div class="card-header">
        <h3>{{ .Company }}</h3>
        <span class="status-badge {{ .StatusClass }}">{{ .Status }}</span>
    </div>
    <div class="card-content">
        <p><strong>Position:</strong> {{ .Role }}</p>
        <p><strong>Applied:</strong> {{ .AppliedDate }}</p>
        {{- if .URL }}
        <p><strong>URL:</strong> <a href="{{ .URL }}" target="_blank" rel="noopener" class="url-link">View Job Posting</a></p>
        {{- end }}
        {{- if .Notes }}
        <div class="notes-section">
            <p><strong>Notes:</strong></p>
            <p class="notes-text">{{ .Notes }}</p>
        </div>
        {{- end }}
        <p><strong>Last Updated:</strong> {{ .LastUpdated }}</p>
    </div>
    <div class="card-actions">
        <a href="{{ .EditHref }}" class="btn btn-secondary">Edit</a>
        <form method="post" action="/delete/{{ .ID }}" class="delete-form" onsubmit="return confirm('Are you sure you want to delete this job application? This action cannot be undone.');">
            <button type="submit" class="btn btn-danger">Delete</button>
        </form>
    </div>
</div>
{{- end }}
{{- end }}
`))

// RenderHTML writes the grid markup. It replaces the whole grid content; callers
// never patch a previous rendering.
func RenderHTML(w io.Writer, grid Grid) error {
	return gridTemplate.Execute(w, grid)
}

// GridHTML renders the grid for embedding in a page template.
func GridHTML(grid Grid) (template.HTML, error) {
	var b strings.Builder
	if err := RenderHTML(&b, grid); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
