package browser

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// Filter narrows the working set to the records matching a status and a search
// term. The result keeps the working set order and shares no slice with it.
func Filter(all []models.Application, status, term string) []models.Application {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	out := make([]models.Application, 0, len(all))
	for _, app := range all {
		if status != "" && status != FilterAll && app.Status != status {
			continue
		}
		if needle != "" && !matches(fold, app, needle) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func matches(fold cases.Caser, app models.Application, needle string) bool {
	for _, field := range []string{app.CompanyName, app.JobRole, app.Status, app.Notes} {
		if field != "" && strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
