package browser

import (
	"strings"
	"unicode"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// LastUpdatedLayout formats the last-updated timestamp on cards.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// Card is the render model of one application.
type Card struct {
	ID          uint
	Company     string
	Role        string
	Status      string
	StatusClass string
	AppliedDate string
	URL         string
	Notes       string
	LastUpdated string
	EditHref    string
}

// EmptyState is shown instead of cards when nothing matches.
type EmptyState struct {
	Title       string
	Message     string
	ActionLabel string
	ActionHref  string
}

// Grid is the render model of the application grid. Exactly one of Cards and
// Empty is set.
type Grid struct {
	Cards []Card
	Empty *EmptyState

	// Seq orders grids rendered by one controller. Views drop a grid older
	// than the one they show. Zero means unordered.
	Seq uint64
}

var emptyState = EmptyState{
	Title:       "No applications found",
	Message:     "Try adjusting your search criteria or add a new application.",
	ActionLabel: "Add New Application",
	ActionHref:  RouteAdd,
}

// BuildGrid maps the filtered view to its render model.
func BuildGrid(apps []models.Application) Grid {
	if len(apps) == 0 {
		empty := emptyState
		return Grid{Empty: &empty}
	}

	cards := make([]Card, 0, len(apps))
	for _, app := range apps {
		card := Card{
			ID:          app.ID,
			Company:     app.CompanyName,
			Role:        app.JobRole,
			Status:      app.Status,
			StatusClass: StatusClass(app.Status),
			AppliedDate: app.AppliedDate,
			URL:         app.URL,
			EditHref:    EditRoute(app.ID),
		}
		if strings.TrimSpace(app.Notes) != "" {
			card.Notes = app.Notes
		}
		switch {
		case app.LastUpdatedText != "":
			card.LastUpdated = app.LastUpdatedText
		case !app.LastUpdated.IsZero():
			card.LastUpdated = app.LastUpdated.Format(LastUpdatedLayout)
		}
		cards = append(cards, card)
	}
	return Grid{Cards: cards}
}

// StatusClass derives a CSS class name from a status label, for example
// "Interview 2" becomes "status-interview-2".
func StatusClass(status string) string {
	var b strings.Builder
	b.WriteString("status")
	dash := true
	for _, r := range strings.ToLower(status) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// SummarySlot is one count on the summary header.
type SummarySlot struct {
	ID     string
	Filter string
	Label  string
	Count  int64
	Active bool
}

// Summary is the render model of the summary header.
type Summary struct {
	Slots []SummarySlot
}

var summarySlots = []SummarySlot{
	{ID: "total-count", Filter: FilterAll, Label: "Total"},
	{ID: "waiting-count", Filter: models.StatusWaiting, Label: models.StatusWaiting},
	{ID: "denied-count", Filter: models.StatusDenied, Label: models.StatusDenied},
	{ID: "interview-count", Filter: models.StatusInterview, Label: models.StatusInterview},
	{ID: "interview2-count", Filter: models.StatusInterview2, Label: models.StatusInterview2},
	{ID: "interview3-count", Filter: models.StatusInterview3, Label: models.StatusInterview3},
	{ID: "offer-count", Filter: models.StatusOffer, Label: models.StatusOffer},
}

// BuildSummary maps server counts to the seven display slots. Statuses the
// server did not report show zero.
func BuildSummary(counts *dtos.Summary, active string) Summary {
	slots := make([]SummarySlot, len(summarySlots))
	copy(slots, summarySlots)

	for i := range slots {
		if counts != nil {
			if slots[i].Filter == FilterAll {
				slots[i].Count = counts.Total
			} else {
				slots[i].Count = counts.ByStatus[slots[i].Filter]
			}
		}
		slots[i].Active = slots[i].Filter == active
	}
	return Summary{Slots: slots}
}

// Slot returns the slot with the given filter value.
func (s Summary) Slot(filter string) (SummarySlot, bool) {
	for _, slot := range s.Slots {
		if slot.Filter == filter {
			return slot, true
		}
	}
	return SummarySlot{}, false
}
