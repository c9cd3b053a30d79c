package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Key names the persisted add-form entry.
const Key = "jobApplicationForm"

// ErrNotFound is returned by a Store when the key holds nothing.
var ErrNotFound = errors.New("autosave: key not found")

// Values maps form field names to their current value.
type Values map[string]string

// Store persists raw entries by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Field describes a form control. Choice controls take one of Options.
type Field struct {
	Name    string
	Choice  bool
	Options []string
}

// Form is the add form as seen by the autosave.
type Form interface {
	Field(name string) (Field, bool)
	SetText(name, value string)
	Select(name, value string) bool
}

// Autosave keeps the add form's in-progress values in a Store.
type Autosave struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Autosave {
	return &Autosave{store: store, log: log}
}

// Load returns the saved values. Missing or malformed entries yield nil.
func (a *Autosave) Load(ctx context.Context) (Values, error) {
	raw, err := a.store.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load form data: %w", err)
	}

	var values Values
	if err := json.Unmarshal(raw, &values); err != nil {
		a.log.Debug("no saved form data", zap.Error(err))
		return nil, nil
	}
	return values, nil
}

// Restore populates the form from the saved values.
func (a *Autosave) Restore(ctx context.Context, form Form) error {
	values, err := a.Load(ctx)
	if err != nil {
		return err
	}

	for name, value := range values {
		field, ok := form.Field(name)
		if !ok {
			continue
		}
		if field.Choice {
			if !form.Select(name, value) {
				a.log.Debug("saved option no longer offered", zap.String("field", name), zap.String("value", value))
			}
			continue
		}
		form.SetText(name, value)
	}
	return nil
}

// Save overwrites the saved entry with the full set of current values.
func (a *Autosave) Save(ctx context.Context, values Values) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode form data: %w", err)
	}
	if err := a.store.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("save form data: %w", err)
	}
	return nil
}

// Clear removes the saved entry.
func (a *Autosave) Clear(ctx context.Context) error {
	if err := a.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear form data: %w", err)
	}
	return nil
}
