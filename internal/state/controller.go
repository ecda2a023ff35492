package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/numeric"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/pricing"
	"github.com/theirongolddev/tarifa/internal/store"
)

// DefaultProjectName is used for log entries added without a name.
const DefaultProjectName = "Project"

// ErrNotFound is returned by DeleteProject for unknown ids.
var ErrNotFound = errors.New("project not found")

// NewProject is a log entry as typed by the user.
type NewProject struct {
	Name  string
	Price string
	Hours string
	Date  string // DateLayout; empty means today
}

// record is the persisted shape of a log entry.
type record struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price numeric.Raw `json:"price"`
	Hours numeric.Raw `json:"hours"`
	Date  string      `json:"date"`
}

// Controller is the single owner of the form and log. Every mutation is
// written through to the store; the in-memory copy stays authoritative if
// the write fails.
type Controller struct {
	mu   sync.RWMutex
	kv   store.KV
	form Form
	log  []model.LoggedProject

	now    func() time.Time
	newID  func() string
	logger logrus.FieldLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDs overrides the id generator for new log entries.
func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// WithLogger sets the logger for load and seed diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.logger = l }
}

// Open loads state from kv. The form is built as defaults, then seed, then
// whatever was persisted, with later layers winning field by field.
// Corrupt persisted values are logged and ignored.
func Open(ctx context.Context, kv store.KV, seed map[string]string, opts ...Option) (*Controller, error) {
	c := &Controller{
		kv:     kv,
		form:   Defaults(),
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	keys := make([]string, 0, len(seed))
	for k := range seed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.form.Set(k, seed[k]); err != nil {
			c.logger.Debugf("ignoring seed key %q", k)
		}
	}

	data, ok, err := kv.Get(ctx, store.KeyState)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	if ok {
		merged := c.form
		if err := json.Unmarshal(data, &merged); err != nil {
			c.logger.Warnf("ignoring corrupt saved state: %v", err)
		} else {
			c.form = merged
		}
	}

	data, ok, err = kv.Get(ctx, store.KeyLog)
	if err != nil {
		return nil, fmt.Errorf("loading log: %w", err)
	}
	if ok {
		var recs []record
		if err := json.Unmarshal(data, &recs); err != nil {
			c.logger.Warnf("ignoring corrupt project log: %v", err)
		} else {
			c.log = fromRecords(recs)
		}
	}

	c.logger.Infof("loaded state: currency %s, %d logged projects", c.form.Currency, len(c.log))
	return c, nil
}

// Form returns a copy of the current form.
func (c *Controller) Form() Form {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form
}

// Config returns the coerced pricing inputs.
func (c *Controller) Config() pricing.Config {
	return c.Form().Config()
}

// Rates derives the current rates.
func (c *Controller) Rates() pricing.Rates {
	return pricing.ComputeRates(c.Config())
}

// Comparison evaluates the comparator fields against the current minimum.
func (c *Controller) Comparison() pricing.Comparison {
	f := c.Form()
	return pricing.Compare(f.Hypothetical(), pricing.ComputeRates(f.Config()).MinHourlyRate)
}

// Log returns a copy of the project log, most recent first.
func (c *Controller) Log() []model.LoggedProject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.LoggedProject, len(c.log))
	copy(out, c.log)
	return out
}

// Rollup aggregates the whole log against the current minimum hourly rate.
func (c *Controller) Rollup() model.LogRollup {
	return pipeline.Aggregate(c.Log(), c.Rates().MinHourlyRate)
}

// Months aggregates the log per calendar month.
func (c *Controller) Months() []model.MonthRollup {
	return pipeline.AggregateMonths(c.Log(), c.Rates().MinHourlyRate)
}

// Set stores one form field and persists the form.
func (c *Controller) Set(ctx context.Context, key, value string) error {
	k, ok := CanonicalKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return c.Update(ctx, func(f *Form) {
		_ = f.Set(k, value)
	})
}

// Update applies fn to the form and persists the result.
func (c *Controller) Update(ctx context.Context, fn func(*Form)) error {
	c.mu.Lock()
	next := c.form
	fn(&next)
	c.form = next
	c.mu.Unlock()
	return c.saveForm(ctx, next)
}

// Reset restores the default form. The log is left untouched.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.form = Defaults()
	f := c.form
	c.mu.Unlock()
	return c.saveForm(ctx, f)
}

// AddProject prepends a new entry to the log. Missing names and dates get
// defaults; price and hours are coerced and clamped to zero.
func (c *Controller) AddProject(ctx context.Context, np NewProject) (model.LoggedProject, error) {
	p := model.LoggedProject{
		ID:    c.newID(),
		Name:  strings.TrimSpace(np.Name),
		Price: max(numeric.Parse(np.Price, 0), 0),
		Hours: max(numeric.Parse(np.Hours, 0), 0),
		Date:  strings.TrimSpace(np.Date),
	}
	if p.Name == "" {
		p.Name = DefaultProjectName
	}
	if p.Date == "" {
		p.Date = c.now().Format(model.DateLayout)
	}

	c.mu.Lock()
	c.log = append([]model.LoggedProject{p}, c.log...)
	snapshot := c.log
	c.mu.Unlock()

	return p, c.saveLog(ctx, snapshot)
}

// DeleteProject removes the entry with the given id.
func (c *Controller) DeleteProject(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := -1
	for i, p := range c.log {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]model.LoggedProject, 0, len(c.log)-1)
	next = append(next, c.log[:idx]...)
	next = append(next, c.log[idx+1:]...)
	c.log = next
	c.mu.Unlock()

	return c.saveLog(ctx, next)
}

// ClearLog empties the log.
func (c *Controller) ClearLog(ctx context.Context) error {
	c.mu.Lock()
	c.log = nil
	c.mu.Unlock()
	return c.saveLog(ctx, nil)
}

// Close releases the underlying store.
func (c *Controller) Close() error {
	return c.kv.Close()
}

func (c *Controller) saveForm(ctx context.Context, f Form) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := c.kv.Put(ctx, store.KeyState, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (c *Controller) saveLog(ctx context.Context, log []model.LoggedProject) error {
	data, err := json.Marshal(toRecords(log))
	if err != nil {
		return fmt.Errorf("encoding log: %w", err)
	}
	if err := c.kv.Put(ctx, store.KeyLog, data); err != nil {
		return fmt.Errorf("saving log: %w", err)
	}
	return nil
}

func toRecords(log []model.LoggedProject) []record {
	recs := make([]record, len(log))
	for i, p := range log {
		recs[i] = record{
			ID:    p.ID,
			Name:  p.Name,
			Price: numeric.RawFloat(p.Price),
			Hours: numeric.RawFloat(p.Hours),
			Date:  p.Date,
		}
	}
	return recs
}

func fromRecords(recs []record) []model.LoggedProject {
	log := make([]model.LoggedProject, len(recs))
	for i, r := range recs {
		log[i] = model.LoggedProject{
			ID:    r.ID,
			Name:  r.Name,
			Price: max(r.Price.Float(0), 0),
			Hours: max(r.Hours.Float(0), 0),
			Date:  r.Date,
		}
	}
	return log
}
