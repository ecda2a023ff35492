package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/clipboard"
	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/state"
	"github.com/theirongolddev/tarifa/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, opts ...Option) App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	n := 0
	ctrl, err := state.Open(context.Background(), store.NewMemory(), nil,
		state.WithClock(func() time.Time { return testNow }),
		state.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		state.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}

	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithConfigSaver(func(config.Config) error { return nil }),
		WithCopier(clipboard.Copier{}),
	}
	return NewApp(ctrl, config.DefaultConfig(), append(base, opts...)...)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// send feeds msg to a. The returned command is not run: ticks and cursor
// blinks would sleep.
func send(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestTabShortcuts(t *testing.T) {
	a := newTestApp(t)

	for _, tc := range []struct {
		key  rune
		want int
	}{
		{'l', tabLog},
		{'x', tabSettings},
		{'c', tabCompare},
		{'r', tabRates},
	} {
		a, _ = send(t, a, runeKey(tc.key))
		if a.activeTab != tc.want {
			t.Fatalf("after %q activeTab = %d, want %d", tc.key, a.activeTab, tc.want)
		}
	}

	a, _ = send(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	if a.activeTab != tabSettings {
		t.Fatalf("left from Rates = %d, want %d", a.activeTab, tabSettings)
	}
}

func TestEditRateFieldPersists(t *testing.T) {
	a := newTestApp(t)

	a, _ = send(t, a, runeKey('j')) // monthly target
	a, _ = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.rates.editing {
		t.Fatal("Enter should start editing")
	}
	if got := a.rates.input.Value(); got != "1500" {
		t.Fatalf("input prefilled with %q, want 1500", got)
	}

	a.rates.input.SetValue("2000")
	a, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.rates.editing {
		t.Fatal("Enter should finish editing")
	}
	out := run(t, cmd)
	if msg, ok := out.(savedMsg); !ok || msg.err != nil {
		t.Fatalf("commit produced %#v", out)
	}
	if got := a.ctrl.Form().MonthlyTarget.String(); got != "2000" {
		t.Fatalf("monthly target = %q, want 2000", got)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	a := newTestApp(t)

	a, _ = send(t, a, runeKey('j'))
	a, _ = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a.rates.input.SetValue("9999")
	a, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	if a.rates.editing || cmd != nil {
		t.Fatalf("esc left editing=%v, cmd=%v", a.rates.editing, cmd != nil)
	}
	if got := a.ctrl.Form().MonthlyTarget.String(); got != "1500" {
		t.Fatalf("monthly target = %q, want unchanged 1500", got)
	}
}

func TestEnterCyclesCurrency(t *testing.T) {
	a := newTestApp(t)

	_, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	out := run(t, cmd)
	if msg, ok := out.(savedMsg); !ok || msg.err != nil || msg.note != "Currency: UYU" {
		t.Fatalf("cycle produced %#v", out)
	}
	if got := a.ctrl.Form().Currency; got != "UYU" {
		t.Fatalf("currency = %q, want UYU", got)
	}
}

func TestAddAndDeleteProject(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabLog

	a, _ = send(t, a, runeKey('a'))
	if a.form == nil || a.formKind != formAdd {
		t.Fatal("'a' should open the add form")
	}

	*a.addVals = addValues{Name: "Logo", Price: "300", Hours: "5"}
	if msg, ok := a.completeForm(formAdd)().(savedMsg); !ok || msg.err != nil {
		t.Fatalf("add produced %#v", msg)
	}
	log := a.ctrl.Log()
	if len(log) != 1 || log[0].Name != "Logo" || log[0].Date != "2025-06-15" {
		t.Fatalf("log = %+v", log)
	}

	a.form = nil
	a, _ = send(t, a, runeKey('d'))
	if a.formKind != formDelete || a.pendingDelete != "id-1" {
		t.Fatalf("'d' opened kind=%d pending=%q", a.formKind, a.pendingDelete)
	}

	// Declined confirmation keeps the entry.
	if cmd := a.completeForm(formDelete); cmd != nil {
		t.Fatal("declined delete should not persist")
	}
	if len(a.ctrl.Log()) != 1 {
		t.Fatal("declined delete removed the entry")
	}

	a.pendingDelete = "id-1"
	*a.confirm = true
	if msg := a.completeForm(formDelete)().(savedMsg); msg.err != nil {
		t.Fatalf("delete: %v", msg.err)
	}
	if len(a.ctrl.Log()) != 0 {
		t.Fatal("confirmed delete kept the entry")
	}
}

func TestMonthFilterCycles(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	for _, d := range []string{"2025-05-02", "2025-06-01", "garbage"} {
		if _, err := a.ctrl.AddProject(ctx, state.NewProject{Name: d, Price: "100", Hours: "2", Date: d}); err != nil {
			t.Fatal(err)
		}
	}
	a.activeTab = tabLog

	var seen []string
	for i := 0; i < 3; i++ {
		a, _ = send(t, a, runeKey('m'))
		seen = append(seen, a.logView.month)
	}
	if strings.Join(seen, ",") != "2025-06,2025-05," {
		t.Fatalf("month cycle = %v", seen)
	}
}

func TestSettingsSaveFailureKeepsValue(t *testing.T) {
	a := newTestApp(t, WithConfigSaver(func(config.Config) error {
		return errors.New("read-only file system")
	}))
	a.activeTab = tabSettings

	a, _ = send(t, a, runeKey('j')) // brand
	a, _ = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a.settings.input.SetValue("Studio Norte")
	a, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	a, _ = send(t, a, run(t, cmd))
	if !a.flashErr || !strings.Contains(a.flash, "config not saved") {
		t.Fatalf("flash = %q (err=%v)", a.flash, a.flashErr)
	}
	if a.cfg.Report.Brand != "Studio Norte" {
		t.Fatalf("brand = %q, want the edited value for this session", a.cfg.Report.Brand)
	}
}

func TestCopyFinalPrice(t *testing.T) {
	var got string
	a := newTestApp(t, WithCopier(clipboard.Copier{
		System: func(s string) error { got = s; return nil },
	}))

	a, cmd := send(t, a, runeKey('y'))
	out := run(t, cmd)
	msg, ok := out.(copiedMsg)
	if !ok || msg.err != nil || msg.method != clipboard.System {
		t.Fatalf("copy produced %#v", out)
	}
	if want := cli.FormatMoney("USD", a.ctrl.Rates().FinalPriceWithTax); got != want {
		t.Fatalf("copied %q, want %q", got, want)
	}

	a, _ = send(t, a, msg)
	if a.flash != "Copied via system clipboard" {
		t.Fatalf("flash = %q", a.flash)
	}
}

func TestFlashExpiresOnlyForItsID(t *testing.T) {
	a := newTestApp(t)
	a.setFlash("first", false)
	a.setFlash("second", false)

	a, _ = send(t, a, flashDoneMsg{id: a.flashID - 1})
	if a.flash != "second" {
		t.Fatalf("stale tick cleared flash: %q", a.flash)
	}
	a, _ = send(t, a, flashDoneMsg{id: a.flashID})
	if a.flash != "" {
		t.Fatalf("flash = %q, want cleared", a.flash)
	}
}

func TestViewRendersEachTab(t *testing.T) {
	a := newTestApp(t)
	a, _ = send(t, a, tea.WindowSizeMsg{Width: 140, Height: 45})

	for _, tc := range []struct {
		tab  int
		want string
	}{
		{tabRates, "Min hourly rate"},
		{tabCompare, "Real hourly"},
		{tabLog, "No projects logged"},
		{tabSettings, "Export folder"},
	} {
		a.activeTab = tc.tab
		if v := a.View(); !strings.Contains(v, tc.want) {
			t.Errorf("tab %d view lacks %q", tc.tab, tc.want)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	a, _ = send(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := a.View(); !strings.Contains(v, "Terminal too narrow") {
		t.Fatalf("narrow view = %q", v)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	if v.Currency != "USD" || v.Theme != "tarifa-dark" || v.Backend != config.BackendSQLite {
		t.Fatalf("prefill = %+v", v)
	}

	v.Currency = "EUR"
	v.Backend = config.BackendMemory
	v.Brand = "  "
	v.Handle = " @norte "
	v.Apply(&cfg)

	if cfg.General.Currency != "EUR" || cfg.Store.Backend != config.BackendMemory {
		t.Fatalf("applied = %+v", cfg)
	}
	if cfg.Report.Brand != "tarifa" {
		t.Fatalf("blank brand overwrote default: %q", cfg.Report.Brand)
	}
	if cfg.Report.Handle != "@norte" {
		t.Fatalf("handle = %q", cfg.Report.Handle)
	}
}

func TestValidators(t *testing.T) {
	for _, s := range []string{"", "250", "12,5", "7 h"} {
		if err := validAmount(s); err != nil {
			t.Errorf("validAmount(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"-1", "abc"} {
		if validAmount(s) == nil {
			t.Errorf("validAmount(%q) accepted", s)
		}
	}
	if validDate("2025-02-30") == nil {
		t.Error("validDate accepted an impossible date")
	}
	if err := validDate(""); err != nil {
		t.Errorf("validDate(\"\") = %v", err)
	}
}
