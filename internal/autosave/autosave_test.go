package autosave

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeForm struct {
	fields map[string]Field
	values map[string]string
}

func newFakeForm() *fakeForm {
	return &fakeForm{
		fields: map[string]Field{
			"company_name": {Name: "company_name"},
			"job_role":     {Name: "job_role"},
			"notes":        {Name: "notes"},
			"status":       {Name: "status", Choice: true, Options: []string{"Waiting for hearback", "Offer"}},
		},
		values: map[string]string{},
	}
}

func (f *fakeForm) Field(name string) (Field, bool) {
	field, ok := f.fields[name]
	return field, ok
}

func (f *fakeForm) SetText(name, value string) {
	f.values[name] = value
}

func (f *fakeForm) Select(name, value string) bool {
	if !slices.Contains(f.fields[name].Options, value) {
		return false
	}
	f.values[name] = value
	return true
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := New(NewMemoryStore(), zap.NewNop())

	require.NoError(t, a.Save(ctx, Values{"company_name": "Acme", "status": "Offer"}))

	form := newFakeForm()
	require.NoError(t, a.Restore(ctx, form))
	require.Equal(t, map[string]string{"company_name": "Acme", "status": "Offer"}, form.values)

	require.NoError(t, a.Clear(ctx))
	values, err := a.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, values)
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := New(NewMemoryStore(), zap.NewNop())

	require.NoError(t, a.Save(ctx, Values{"company_name": "Acme", "notes": "first"}))
	require.NoError(t, a.Save(ctx, Values{"company_name": "Acme Corp"}))

	values, err := a.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Values{"company_name": "Acme Corp"}, values)
}

func TestRestoreSkipsUnknownFieldsAndOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := New(NewMemoryStore(), zap.NewNop())
	require.NoError(t, a.Save(ctx, Values{"company_name": "Acme", "salary": "100k", "status": "Ghosted"}))

	form := newFakeForm()
	require.NoError(t, a.Restore(ctx, form))
	require.Equal(t, map[string]string{"company_name": "Acme"}, form.values)
}

func TestMalformedEntryIsAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, Key, []byte("{not json")))

	a := New(store, zap.NewNop())
	form := newFakeForm()
	require.NoError(t, a.Restore(ctx, form))
	require.Empty(t, form.values)
}

func TestFileStorePersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "autosave.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, Key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, New(store, zap.NewNop()).Save(ctx, Values{"job_role": "SRE"}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	values, err := New(reopened, zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Values{"job_role": "SRE"}, values)

	require.NoError(t, reopened.Delete(ctx, Key))
	_, err = reopened.Get(ctx, Key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "autosave.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, Key)
	require.Error(t, err)

	require.NoError(t, store.Set(ctx, Key, []byte(`{"company_name":"Acme"}`)))
	raw, err := store.Get(ctx, Key)
	require.NoError(t, err)
	require.JSONEq(t, `{"company_name":"Acme"}`, string(raw))
}
