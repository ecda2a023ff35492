package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tarifa/internal/store"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func openTest(t *testing.T, kv store.KV, seed map[string]string) (*Controller, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	n := 0
	c, err := Open(context.Background(), kv, seed,
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithLogger(logger),
	)
	require.NoError(t, err)
	return c, hook
}

func TestOpen_EmptyStoreUsesDefaults(t *testing.T) {
	c, _ := openTest(t, store.NewMemory(), nil)
	assert.Equal(t, Defaults(), c.Form())
	assert.Empty(t, c.Log())
	assert.InDelta(t, 31.5625, c.Rates().MinHourlyRate, 1e-9)
}

func TestOpen_PersistedWinsOverSeed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, store.KeyState, []byte(`{"monthly_target":"3000"}`)))

	c, hook := openTest(t, kv, map[string]string{
		"monthlyTarget": "2000",
		"currency":      "ars",
		"prop_client":   "ACME",
	})

	f := c.Form()
	assert.Equal(t, "3000", f.MonthlyTarget.String(), "saved value beats seed")
	assert.Equal(t, "ARS", f.Currency, "seed beats defaults")
	assert.Equal(t, "8", f.HoursPerProject.String())

	var ignored bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Message == `ignoring seed key "prop_client"` {
			ignored = true
		}
	}
	assert.True(t, ignored, "unknown seed keys are logged at debug level")
}

func TestOpen_CorruptStateIsIgnored(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, store.KeyState, []byte(`{"monthly_target":`)))
	require.NoError(t, kv.Put(ctx, store.KeyLog, []byte(`not json`)))

	c, hook := openTest(t, kv, map[string]string{"tax_pct": "21"})

	assert.Equal(t, "21", c.Form().TaxPct.String(), "seed survives a corrupt save")
	assert.Empty(t, c.Log())

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestOpen_LegacyLogRecords(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, store.KeyLog, []byte(`[
		{"id":"1","name":"Logo","price":"300","hours":"10","date":"2025-06-01"},
		{"id":"2","name":"Flyer","price":120.5,"hours":"2,5","date":"2025-05-20"},
		{"id":"3","name":"Broken","price":"-40","hours":"abc","date":"2025-05-01"}
	]`)))

	c, _ := openTest(t, kv, nil)
	log := c.Log()
	require.Len(t, log, 3)
	assert.Equal(t, 120.5, log[1].Price)
	assert.Equal(t, 2.5, log[1].Hours)
	assert.Zero(t, log[2].Price)
	assert.Zero(t, log[2].Hours)
}

func TestOpen_StoreFailure(t *testing.T) {
	_, err := Open(context.Background(), failingKV{}, nil, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading state")
}

func TestSetPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c, _ := openTest(t, kv, nil)

	require.NoError(t, c.Set(ctx, "tools_monthly", "100"))
	assert.Greater(t, c.Rates().MinHourlyRate, 31.5625)

	reopened, _ := openTest(t, kv, nil)
	assert.Equal(t, "100", reopened.Form().ToolsMonthly.String())

	err := c.Set(ctx, "unknown", "1")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestUpdateAndReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c, _ := openTest(t, kv, nil)

	require.NoError(t, c.Update(ctx, func(f *Form) {
		f.ComparePrice = "600"
		f.CompareHours = "10"
	}))
	cmp := c.Comparison()
	assert.InDelta(t, 60, cmp.RealHourly, 1e-9)

	_, err := c.AddProject(ctx, NewProject{Name: "Kept", Price: "100", Hours: "1"})
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, Defaults(), c.Form())
	assert.Len(t, c.Log(), 1, "reset leaves the log alone")

	reopened, _ := openTest(t, kv, nil)
	assert.Equal(t, Defaults(), reopened.Form())
}

func TestAddProject_Defaults(t *testing.T) {
	ctx := context.Background()
	c, _ := openTest(t, store.NewMemory(), nil)

	p, err := c.AddProject(ctx, NewProject{Price: "-5", Hours: "3,5"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, DefaultProjectName, p.Name)
	assert.Equal(t, "2025-06-15", p.Date)
	assert.Zero(t, p.Price, "negative prices clamp to zero")
	assert.Equal(t, 3.5, p.Hours)
}

func TestAddProject_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c, _ := openTest(t, kv, nil)

	_, err := c.AddProject(ctx, NewProject{Name: "First", Price: "300", Hours: "10", Date: "2025-06-01"})
	require.NoError(t, err)
	_, err = c.AddProject(ctx, NewProject{Name: "Second", Price: "100", Hours: "0", Date: "2025-06-02"})
	require.NoError(t, err)

	log := c.Log()
	require.Len(t, log, 2)
	assert.Equal(t, "Second", log[0].Name)

	r := c.Rollup()
	assert.Equal(t, 2, r.Projects)
	assert.Equal(t, 400.0, r.Revenue)
	assert.Equal(t, 1, r.Below)

	data, ok, err := kv.Get(ctx, store.KeyLog)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"id-2","name":"Second","price":"100","hours":"0","date":"2025-06-02"},
		{"id":"id-1","name":"First","price":"300","hours":"10","date":"2025-06-01"}
	]`, string(data))
}

func TestLogIsACopy(t *testing.T) {
	ctx := context.Background()
	c, _ := openTest(t, store.NewMemory(), nil)
	_, err := c.AddProject(ctx, NewProject{Name: "A", Price: "1", Hours: "1"})
	require.NoError(t, err)

	log := c.Log()
	log[0].Name = "mutated"
	assert.Equal(t, "A", c.Log()[0].Name)
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c, _ := openTest(t, kv, nil)

	for _, name := range []string{"a", "b", "c"} {
		_, err := c.AddProject(ctx, NewProject{Name: name, Price: "10", Hours: "1"})
		require.NoError(t, err)
	}

	require.NoError(t, c.DeleteProject(ctx, "id-2"))
	names := []string{}
	for _, p := range c.Log() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"c", "a"}, names)

	err := c.DeleteProject(ctx, "id-2")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.ClearLog(ctx))
	assert.Empty(t, c.Log())

	reopened, _ := openTest(t, kv, nil)
	assert.Empty(t, reopened.Log())
}

func TestMonths(t *testing.T) {
	ctx := context.Background()
	c, _ := openTest(t, store.NewMemory(), nil)
	_, _ = c.AddProject(ctx, NewProject{Name: "May", Price: "100", Hours: "2", Date: "2025-05-02"})
	_, _ = c.AddProject(ctx, NewProject{Name: "June", Price: "300", Hours: "10"})

	months := c.Months()
	require.Len(t, months, 2)
	assert.Equal(t, "2025-06", months[0].Month)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KV: store.NewMemory()}
	c, _ := openTest(t, kv, nil)

	kv.failPuts = true
	err := c.Set(ctx, "tax_pct", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving state")
	assert.Equal(t, "0", c.Form().TaxPct.String())

	_, err = c.AddProject(ctx, NewProject{Name: "x", Price: "1", Hours: "1"})
	require.Error(t, err)
	assert.Len(t, c.Log(), 1)
}

var errBoom = errors.New("boom")

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBoom }
func (failingKV) Put(context.Context, string, []byte) error         { return errBoom }
func (failingKV) Delete(context.Context, string) error              { return errBoom }
func (failingKV) Close() error                                      { return nil }

type flakyKV struct {
	store.KV
	failPuts bool
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	if f.failPuts {
		return errBoom
	}
	return f.KV.Put(ctx, key, value)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
