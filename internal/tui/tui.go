package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/autosave"
	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// Page names.
const (
	pageList    = "list"
	pageAdd     = "add"
	pageConfirm = "confirm"
)

const helpText = "[yellow]Ctrl+N[-] add  [yellow]/[-] search  [yellow]0-6[-] filter  " +
	"[yellow]s[-] sort  [yellow]d[-] delete  [yellow]r[-] reload  [yellow]q[-] quit"

// statusFilters maps the number keys to summary slots.
var statusFilters = append([]string{browser.FilterAll}, models.Statuses...)

// TUI is the terminal front end of the tracker. It implements browser.View and
// browser.Confirmer; every screen update is queued on the tview event loop.
type TUI struct {
	app     *tview.Application
	pages   *tview.Pages
	summary *tview.TextView
	search  *tview.InputField
	sortBy  *tview.DropDown
	orderBy *tview.DropDown
	table   *tview.Table
	notices *tview.TextView
	form    *FormView

	ctrl     *browser.Controller
	notifier *browser.Notifier
	autosave *autosave.Autosave
	writer   *autosave.Writer
	log      *zap.Logger

	ctx context.Context

	mu      sync.Mutex
	route   string
	slots   []browser.SummarySlot
	cards   []browser.Card
	gridSeq uint64
}

// New builds the interface on top of api. Form progress is kept in saver.
func New(api browser.API, saver *autosave.Autosave, log *zap.Logger) *TUI {
	t := &TUI{
		app:      tview.NewApplication(),
		notifier: browser.NewNotifier(),
		autosave: saver,
		writer:   autosave.NewWriter(saver, log),
		log:      log,
		ctx:      context.Background(),
		route:    browser.RouteList,
	}
	t.ctrl = browser.NewController(api, t, t, t.notifier, log)
	t.build()
	return t
}

// Controller exposes the controller driving the interface.
func (t *TUI) Controller() *browser.Controller {
	return t.ctrl
}

func (t *TUI) build() {
	t.summary = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	t.summary.SetBorder(true).SetTitle(" Summary ")

	t.search = tview.NewInputField().
		SetLabel("Search: ").
		SetPlaceholder("company, role, status or notes").
		SetChangedFunc(func(text string) { t.ctrl.SetSearchTerm(text) }).
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEscape {
				t.ctrl.ClearSearch()
				t.search.SetText("")
			}
			t.app.SetFocus(t.table)
		})

	t.sortBy = tview.NewDropDown().SetLabel(" Sort: ")
	t.sortBy.SetOptions(labels(browser.SortOptions), nil)
	t.sortBy.SetCurrentOption(0)
	t.sortBy.SetSelectedFunc(func(string, int) { t.sortChanged() })

	t.orderBy = tview.NewDropDown().SetLabel(" Order: ")
	t.orderBy.SetOptions(labels(browser.SortOrders), nil)
	t.orderBy.SetCurrentOption(0)
	t.orderBy.SetSelectedFunc(func(string, int) { t.sortChanged() })

	controls := tview.NewFlex().
		AddItem(t.search, 0, 2, false).
		AddItem(t.sortBy, 0, 1, false).
		AddItem(t.orderBy, 0, 1, false)

	t.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	t.table.SetBorder(true).SetTitle(" Applications ")
	t.table.SetInputCapture(t.tableKeys)

	help := tview.NewTextView().SetDynamicColors(true).SetText(helpText)

	list := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.summary, 4, 0, false).
		AddItem(controls, 1, 0, false).
		AddItem(t.table, 0, 1, true).
		AddItem(help, 1, 0, false)

	t.form = NewFormView(t.submit, func() { t.show(browser.RouteList) })
	t.form.OnChange(func(values autosave.Values) {
		t.writer.Save(t.ctx, values)
	})

	t.pages = tview.NewPages().
		AddPage(pageList, list, true, true).
		AddPage(pageAdd, t.form.Primitive(), true, false)

	t.notices = tview.NewTextView().SetDynamicColors(true)
	t.notifier.OnChange(func(active []browser.Notification) {
		t.app.QueueUpdateDraw(func() { t.showNotices(active) })
	})

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.pages, 0, 1, true).
		AddItem(t.notices, 2, 0, false)

	t.app.SetRoot(root, true).
		EnableMouse(true).
		SetInputCapture(t.globalKeys)
}

// Run shows the list and blocks until the user quits or ctx ends.
func (t *TUI) Run(ctx context.Context) error {
	t.ctx = ctx

	go func() {
		<-ctx.Done()
		t.app.Stop()
	}()
	go t.ctrl.Enter(ctx, browser.RouteList)

	err := t.app.Run()
	t.writer.Wait()
	return err
}

// ShowSummary implements browser.View.
func (t *TUI) ShowSummary(summary browser.Summary) {
	t.mu.Lock()
	t.slots = summary.Slots
	t.mu.Unlock()

	t.app.QueueUpdateDraw(t.drawSummary)
}

// MarkActive implements browser.View.
func (t *TUI) MarkActive(filter string) {
	t.mu.Lock()
	for i := range t.slots {
		t.slots[i].Active = t.slots[i].Filter == filter
	}
	t.mu.Unlock()

	t.app.QueueUpdateDraw(t.drawSummary)
}

// ShowGrid implements browser.View.
func (t *TUI) ShowGrid(grid browser.Grid) {
	t.app.QueueUpdateDraw(func() { t.applyGrid(grid) })
}

// applyGrid draws grid unless a newer one is already shown. Event loop only.
func (t *TUI) applyGrid(grid browser.Grid) {
	t.mu.Lock()
	if grid.Seq != 0 && grid.Seq <= t.gridSeq {
		t.mu.Unlock()
		return
	}
	if grid.Seq != 0 {
		t.gridSeq = grid.Seq
	}
	t.cards = grid.Cards
	t.mu.Unlock()

	t.drawGrid(grid)
}

// Navigate implements browser.View.
func (t *TUI) Navigate(route string) {
	t.app.QueueUpdateDraw(func() { t.show(route) })
}

// Confirm implements browser.Confirmer with a modal dialog. It must not be
// called from the event loop.
func (t *TUI) Confirm(ctx context.Context, message string) bool {
	answer := make(chan bool, 1)
	t.app.QueueUpdateDraw(func() { t.openConfirm(message, answer) })

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		return false
	}
}

// openConfirm shows the confirm modal. While one is already open the new
// request is declined. Event loop only.
func (t *TUI) openConfirm(message string, answer chan<- bool) {
	if t.pages.HasPage(pageConfirm) {
		answer <- false
		return
	}

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			t.pages.RemovePage(pageConfirm)
			t.app.SetFocus(t.table)
			answer <- label == "Delete"
		})
	t.pages.AddPage(pageConfirm, modal, true, true)
	t.app.SetFocus(modal)
}

// show switches pages and runs the route hooks. Event loop only.
func (t *TUI) show(route string) {
	t.mu.Lock()
	t.route = route
	t.mu.Unlock()

	switch route {
	case browser.RouteAdd:
		t.form.Reset()
		t.form.Mute(func() {
			if err := t.autosave.Restore(t.ctx, t.form); err != nil {
				t.log.Warn("restore saved form failed", zap.Error(err))
			}
		})
		t.pages.SwitchToPage(pageAdd)
		t.app.SetFocus(t.form.Primitive())
	default:
		t.pages.SwitchToPage(pageList)
		t.app.SetFocus(t.table)
		go t.ctrl.Enter(t.ctx, browser.RouteList)
	}
}

func (t *TUI) currentRoute() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.route
}

func (t *TUI) submit(values browser.FormValues) {
	go func() {
		if err := t.ctrl.SubmitAdd(t.ctx, values); err != nil {
			t.log.Debug("add application failed", zap.Error(err))
			return
		}
		t.writer.Clear(t.ctx)
	}()
}

func (t *TUI) sortChanged() {
	si, _ := t.sortBy.GetCurrentOption()
	oi, _ := t.orderBy.GetCurrentOption()
	if si < 0 || oi < 0 {
		return
	}
	key, order := browser.SortOptions[si].Value, browser.SortOrders[oi].Value
	go t.ctrl.SetSort(t.ctx, key, order)
}

func (t *TUI) globalKeys(event *tcell.EventKey) *tcell.EventKey {
	if front, _ := t.pages.GetFrontPage(); front == pageConfirm {
		return event
	}
	route := t.currentRoute()
	if target, ok := browser.ResolveShortcut(route, keyOf(event)); ok {
		if target != route {
			t.show(target)
		}
		return nil
	}
	return event
}

func (t *TUI) tableKeys(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}

	r := event.Rune()
	switch {
	case r >= '0' && int(r-'0') < len(statusFilters):
		t.ctrl.SetStatusFilter(statusFilters[r-'0'])
	case r == '/':
		t.app.SetFocus(t.search)
	case r == 's':
		t.app.SetFocus(t.sortBy)
	case r == 'r':
		go t.ctrl.Enter(t.ctx, browser.RouteList)
	case r == 'd':
		if id, ok := t.selectedID(); ok {
			go func() {
				if err := t.ctrl.DeleteApplication(t.ctx, id); err != nil {
					t.log.Debug("delete not completed", zap.Uint("id", id), zap.Error(err))
				}
			}()
		}
	case r == 'q':
		t.app.Stop()
	default:
		return event
	}
	return nil
}

func (t *TUI) selectedID() (uint, bool) {
	row, _ := t.table.GetSelection()

	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 || row > len(t.cards) {
		return 0, false
	}
	return t.cards[row-1].ID, true
}

func (t *TUI) drawSummary() {
	t.mu.Lock()
	slots := append([]browser.SummarySlot(nil), t.slots...)
	t.mu.Unlock()

	var b strings.Builder
	for i, slot := range slots {
		style := "[white]"
		if slot.Active {
			style = "[black:yellow]"
		}
		fmt.Fprintf(&b, "%s %d:%s [::b]%d[::-] [-:-:-]  ", style, i, tview.Escape(slot.Label), slot.Count)
	}
	t.summary.SetText(b.String())
}

var gridHeader = []string{"Company", "Role", "Status", "Applied", "Last Updated", "URL", "Notes"}

func (t *TUI) drawGrid(grid browser.Grid) {
	t.table.Clear()
	for col, title := range gridHeader {
		t.table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	if grid.Empty != nil {
		t.table.SetCell(1, 0, tview.NewTableCell(grid.Empty.Title).SetSelectable(false))
		t.table.SetCell(2, 0, tview.NewTableCell(grid.Empty.Message).SetSelectable(false))
		t.table.SetCell(3, 0, tview.NewTableCell("Press Ctrl+N: "+grid.Empty.ActionLabel).
			SetTextColor(tcell.ColorGreen).
			SetSelectable(false))
		return
	}

	for i, card := range grid.Cards {
		row := i + 1
		cells := []string{card.Company, card.Role, card.Status, card.AppliedDate, card.LastUpdated, card.URL, card.Notes}
		for col, text := range cells {
			cell := tview.NewTableCell(tview.Escape(text)).SetMaxWidth(40)
			if col == 2 {
				cell.SetTextColor(statusColor(card.StatusClass))
			}
			if col == len(cells)-1 {
				cell.SetExpansion(1)
			}
			t.table.SetCell(row, col, cell)
		}
	}
	t.table.Select(1, 0)
}

func (t *TUI) showNotices(active []browser.Notification) {
	var b strings.Builder
	for _, n := range active {
		color := "green"
		if n.Kind == browser.NotifyError {
			color = "red"
		}
		if n.Leaving {
			color = "gray"
		}
		fmt.Fprintf(&b, "[%s]%s[-]\n", color, tview.Escape(n.Message))
	}
	t.notices.SetText(b.String())
}

func statusColor(class string) tcell.Color {
	switch class {
	case "status-offer":
		return tcell.ColorGreen
	case "status-denied":
		return tcell.ColorRed
	case "status-waiting-for-hearback":
		return tcell.ColorWhite
	}
	return tcell.ColorYellow
}

func labels(options []browser.SortOption) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Label)
	}
	return out
}
