package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/money"
	"github.com/theirongolddev/tarifa/internal/numeric"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formDelete
	formClear
	formReset
	formSetup
)

// addValues backs the add-project form. It lives on the heap because the
// App is copied on every Update.
type addValues struct {
	Name  string
	Price string
	Hours string
	Date  string
}

func newAddForm(v *addValues, currency string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("Project").
				CharLimit(80).
				Value(&v.Name),
			huh.NewInput().
				Title("Price charged ("+money.Lookup(currency).Code+")").
				Placeholder("0").
				Validate(validAmount).
				Value(&v.Price),
			huh.NewInput().
				Title("Hours spent").
				Placeholder("0").
				Validate(validAmount).
				Value(&v.Hours),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, empty for today").
				Placeholder(time.Now().Format(model.DateLayout)).
				Validate(validDate).
				Value(&v.Date),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func validAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if numeric.Parse(s, -1) < 0 {
		return errors.New("enter a number, 0 or more")
	}
	return nil
}

func validDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func newConfirmForm(title, description string, v *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(v),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

// SetupValues backs the first-run setup form.
type SetupValues struct {
	Currency string
	Theme    string
	Backend  string
	Brand    string
	Handle   string
}

// SetupValuesFrom pre-fills the setup form from cfg.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Currency: money.Lookup(cfg.General.Currency).Code,
		Theme:    theme.ByName(cfg.Appearance.Theme).Name,
		Backend:  cfg.Store.Backend,
		Brand:    cfg.Report.Brand,
		Handle:   cfg.Report.Handle,
	}
}

// Apply copies the answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.General.Currency = v.Currency
	cfg.Appearance.Theme = v.Theme
	cfg.Store.Backend = v.Backend
	if b := strings.TrimSpace(v.Brand); b != "" {
		cfg.Report.Brand = b
	}
	cfg.Report.Handle = strings.TrimSpace(v.Handle)
}

// NewSetupForm builds the setup wizard shared by `tarifa setup` and the
// dashboard's first run.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tarifa").
				Description("Work out the minimum you should charge.\nA few questions, then you're in."),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(money.Codes()...)...).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should your numbers be stored?").
				Options(
					huh.NewOption("SQLite file (recommended)", config.BackendSQLite),
					huh.NewOption("Redis", config.BackendRedis),
					huh.NewOption("Nowhere, forget on exit", config.BackendMemory),
				).
				Value(&v.Backend),
			huh.NewInput().
				Title("Brand name").
				Description("Shown on exported reports").
				Value(&v.Brand),
			huh.NewInput().
				Title("Handle").
				Placeholder("@studio").
				Value(&v.Handle),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}
