package tui

import (
	"github.com/rivo/tview"

	"github.com/justsurfingit/Job-Application-Tracker/internal/autosave"
	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// Add form field names, matching the request json names.
const (
	fieldCompany = "company_name"
	fieldRole    = "job_role"
	fieldDate    = "applied_date"
	fieldStatus  = "status"
	fieldURL     = "url"
	fieldNotes   = "notes"
)

// FormView is the add form. It implements autosave.Form.
type FormView struct {
	form   *tview.Form
	inputs map[string]*tview.InputField
	status *tview.DropDown
	notes  *tview.TextArea

	// onChange is muted while values are set programmatically.
	onChange func(autosave.Values)
	muted    bool
}

// NewFormView builds the add form. onSubmit and onCancel back the two buttons.
func NewFormView(onSubmit func(browser.FormValues), onCancel func()) *FormView {
	f := &FormView{
		form:   tview.NewForm(),
		inputs: map[string]*tview.InputField{},
	}

	f.addInput(fieldCompany, "Company Name *", "")
	f.addInput(fieldRole, "Job Role *", "")
	f.addInput(fieldDate, "Applied Date *", "YYYY-MM-DD")

	f.status = tview.NewDropDown().SetLabel("Status *")
	f.status.SetOptions(models.Statuses, nil)
	f.status.SetCurrentOption(0)
	f.status.SetSelectedFunc(func(string, int) { f.changed() })
	f.form.AddFormItem(f.status)

	f.addInput(fieldURL, "Job Posting URL", "https://")

	f.notes = tview.NewTextArea().SetLabel("Notes")
	f.notes.SetSize(4, 0)
	f.notes.SetChangedFunc(f.changed)
	f.form.AddFormItem(f.notes)

	f.form.AddButton("Add Application", func() { onSubmit(f.FormValues()) })
	f.form.AddButton("Cancel", onCancel)
	f.form.SetBorder(true).SetTitle(" Add New Job Application ")

	return f
}

func (f *FormView) addInput(name, label, placeholder string) {
	input := tview.NewInputField().
		SetLabel(label).
		SetPlaceholder(placeholder).
		SetFieldWidth(48).
		SetChangedFunc(func(string) { f.changed() })
	f.inputs[name] = input
	f.form.AddFormItem(input)
}

// Primitive returns the widget to place on screen.
func (f *FormView) Primitive() tview.Primitive {
	return f.form
}

// OnChange registers the callback run with the full value set after every edit.
func (f *FormView) OnChange(fn func(autosave.Values)) {
	f.onChange = fn
}

func (f *FormView) changed() {
	if f.muted || f.onChange == nil {
		return
	}
	f.onChange(f.Values())
}

// Values returns the current value of every field.
func (f *FormView) Values() autosave.Values {
	values := autosave.Values{}
	for name, input := range f.inputs {
		values[name] = input.GetText()
	}
	_, values[fieldStatus] = f.status.GetCurrentOption()
	values[fieldNotes] = f.notes.GetText()
	return values
}

func (f *FormView) FormValues() browser.FormValues {
	return browser.FormValues(f.Values())
}

// Reset empties the form without reporting a change.
func (f *FormView) Reset() {
	f.Mute(func() {
		for _, input := range f.inputs {
			input.SetText("")
		}
		f.status.SetCurrentOption(0)
		f.notes.SetText("", false)
	})
	f.form.SetFocus(0)
}

// Mute runs fn without reporting changes.
func (f *FormView) Mute(fn func()) {
	prev := f.muted
	f.muted = true
	defer func() { f.muted = prev }()
	fn()
}

func (f *FormView) Field(name string) (autosave.Field, bool) {
	switch name {
	case fieldStatus:
		return autosave.Field{Name: name, Choice: true, Options: models.Statuses}, true
	case fieldNotes:
		return autosave.Field{Name: name}, true
	}
	if _, ok := f.inputs[name]; ok {
		return autosave.Field{Name: name}, true
	}
	return autosave.Field{}, false
}

func (f *FormView) SetText(name, value string) {
	if name == fieldNotes {
		f.notes.SetText(value, false)
		return
	}
	if input, ok := f.inputs[name]; ok {
		input.SetText(value)
	}
}

// Select picks the option equal to value. Unknown options leave the current choice.
func (f *FormView) Select(name, value string) bool {
	if name != fieldStatus {
		return false
	}
	for i, option := range models.Statuses {
		if option == value {
			f.status.SetCurrentOption(i)
			return true
		}
	}
	return false
}
