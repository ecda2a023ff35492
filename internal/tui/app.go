// Package tui provides the interactive Bubble Tea dashboard for tarifa.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/clipboard"
	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/export"
	"github.com/theirongolddev/tarifa/internal/state"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// savedMsg reports the outcome of a store or config write.
type savedMsg struct {
	note string
	err  error
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	method clipboard.Method
	err    error
}

// exportedMsg reports a finished CSV or HTML export.
type exportedMsg struct {
	path string
	err  error
}

// flashDoneMsg clears the status message it was scheduled for.
type flashDoneMsg struct{ id int }

// App is the root Bubble Tea model.
type App struct {
	ctrl       *state.Controller
	cfg        config.Config
	saveConfig func(config.Config) error
	copier     clipboard.Copier
	now        func() time.Time
	storeLabel string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	rates    editorState
	compare  editorState
	settings editorState
	logView  logState

	// Modal huh form. Bound values are pointers so they survive App copies.
	form          *huh.Form
	formKind      formKind
	addVals       *addValues
	confirm       *bool
	pendingDelete string
	setupVals     *SetupValues

	// Status bar message
	flash    string
	flashErr bool
	flashID  int
}

const (
	tabRates = iota
	tabCompare
	tabLog
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
	flashDuration    = 2200 * time.Millisecond
	storeTimeout     = 5 * time.Second
)

// Option configures an App.
type Option func(*App)

// WithConfigSaver replaces config.Save, e.g. in tests.
func WithConfigSaver(fn func(config.Config) error) Option {
	return func(a *App) { a.saveConfig = fn }
}

// WithCopier replaces the clipboard chain.
func WithCopier(c clipboard.Copier) Option {
	return func(a *App) { a.copier = c }
}

// WithClock sets the clock used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithStoreLabel names the store actually in use, shown in the header.
func WithStoreLabel(label string) Option {
	return func(a *App) { a.storeLabel = label }
}

// WithSetup opens the setup wizard on start.
func WithSetup() Option {
	return func(a *App) {
		a.setupVals = SetupValuesFrom(a.cfg)
		a.form = NewSetupForm(a.setupVals)
		a.formKind = formSetup
	}
}

// NewApp creates the dashboard over ctrl.
func NewApp(ctrl *state.Controller, cfg config.Config, opts ...Option) App {
	copier := clipboard.Default()
	copier.Manual = nil // stdout belongs to the renderer

	a := App{
		ctrl:       ctrl,
		cfg:        cfg,
		saveConfig: config.Save,
		copier:     copier,
		now:        time.Now,
		storeLabel: cfg.Store.Backend,
		logView:    logState{},
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabLog {
				a.logView.move(-1, len(a.visibleLog()))
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabLog {
				a.logView.move(1, len(a.visibleLog()))
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar is the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			return a.updateForm(msg)
		}

		if ed := a.editor(); ed != nil && ed.editing {
			return a.updateEditor(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "y":
			return a, a.copyFinalPrice()
		case "e":
			return a, a.exportCmd(export.CSVFilename)
		case "p":
			return a, a.exportCmd(export.ReportFilename)
		}

		if a.activeTab == tabLog {
			if m, cmd, ok := a.updateLogKeys(key); ok {
				return m, cmd
			}
		} else if a.editor() != nil {
			if m, cmd, ok := a.updateEditorKeys(key); ok {
				return m, cmd
			}
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case savedMsg:
		if msg.err != nil {
			return a, a.setFlash(msg.err.Error(), true)
		}
		a.logView.clamp(len(a.visibleLog()))
		if msg.note == "" {
			return a, nil
		}
		return a, a.setFlash(msg.note, false)

	case copiedMsg:
		if msg.err != nil {
			return a, a.setFlash("Copy failed: "+msg.err.Error(), true)
		}
		return a, a.setFlash("Copied via "+msg.method.String(), false)

	case exportedMsg:
		if msg.err != nil {
			return a, a.setFlash(msg.err.Error(), true)
		}
		return a, a.setFlash("Exported "+msg.path, false)

	case flashDoneMsg:
		if msg.id == a.flashID {
			a.flash = ""
			a.flashErr = false
		}
		return a, nil
	}

	// Forward unhandled messages to the open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	if ed := a.editor(); ed != nil && ed.editing {
		var cmd tea.Cmd
		ed.input, cmd = ed.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) openForm(kind formKind, f *huh.Form) (tea.Model, tea.Cmd) {
	a.form = f
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form = nil
		a.formKind = formNone
		return a, a.completeForm(kind)
	case huh.StateAborted:
		a.form = nil
		a.formKind = formNone
		a.pendingDelete = ""
		return a, nil
	}

	return a, cmd
}

// completeForm applies a submitted form.
func (a *App) completeForm(kind formKind) tea.Cmd {
	ctrl := a.ctrl
	confirmed := a.confirm != nil && *a.confirm

	switch kind {
	case formAdd:
		v := *a.addVals
		return a.persist("Project logged", func(ctx context.Context) error {
			_, err := ctrl.AddProject(ctx, state.NewProject{Name: v.Name, Price: v.Price, Hours: v.Hours, Date: v.Date})
			return err
		})

	case formDelete:
		id := a.pendingDelete
		a.pendingDelete = ""
		if !confirmed || id == "" {
			return nil
		}
		return a.persist("Project deleted", func(ctx context.Context) error {
			return ctrl.DeleteProject(ctx, id)
		})

	case formClear:
		if !confirmed {
			return nil
		}
		return a.persist("Log cleared", ctrl.ClearLog)

	case formReset:
		if !confirmed {
			return nil
		}
		return a.persist("Inputs reset to defaults", ctrl.Reset)

	case formSetup:
		a.setupVals.Apply(&a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		currency := a.cfg.General.Currency
		return tea.Batch(
			a.saveConfigCmd("Setup saved"),
			a.persist("", func(ctx context.Context) error {
				return ctrl.Set(ctx, state.KeyCurrency, currency)
			}),
		)
	}
	return nil
}

// persist runs a controller mutation off the update loop.
func (a App) persist(note string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return savedMsg{note: note, err: fn(ctx)}
	}
}

// saveConfigCmd writes the config. Failures only reach the status bar; the
// in-memory settings still apply for this session.
func (a App) saveConfigCmd(note string) tea.Cmd {
	save, cfg := a.saveConfig, a.cfg
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return savedMsg{err: fmt.Errorf("config not saved: %w", err)}
		}
		return savedMsg{note: note}
	}
}

func (a App) copyFinalPrice() tea.Cmd {
	text := cli.FormatMoney(a.ctrl.Form().Currency, a.ctrl.Rates().FinalPriceWithTax)
	copier := a.copier
	return func() tea.Msg {
		m, err := copier.Copy(text)
		return copiedMsg{method: m, err: err}
	}
}

func (a App) exportCmd(name string) tea.Cmd {
	ctrl, rc := a.ctrl, a.cfg.Report
	path := export.Resolve("", rc.OutputDir, name)
	return func() tea.Msg {
		var err error
		if name == export.CSVFilename {
			err = export.SaveCSV(path, ctrl.Snapshot())
		} else {
			err = export.SaveReport(path, ctrl.Report(rc.Brand, rc.Handle))
		}
		return exportedMsg{path: path, err: err}
	}
}

func (a *App) setFlash(msg string, isErr bool) tea.Cmd {
	a.flashID++
	a.flash = msg
	a.flashErr = isErr
	id := a.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{id: id}
	})
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tarifa needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	if a.formKind == formSetup {
		return a.form.View()
	}

	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"r c l x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through fields and projects"},
		{"m", "Cycle month filter (Log)"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Edit field / Confirm"},
		{"Esc", "Cancel edit"},
		{"a", "Log a project"},
		{"d D", "Delete project / Clear log"},
		{"R", "Reset inputs to defaults"},
		{"y", "Copy final price"},
		{"e p", "Export CSV / HTML report"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(a.ctrl.Form().Currency) +
		pillStyle.Render(" │ ") + pillAccentStyle.Render(a.storeLabel)
	if a.logView.month != "" {
		pill += pillStyle.Render(" │ ") + pillAccentStyle.Render(a.logView.month)
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.flash, a.flashErr)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabRates:
		content = a.renderRatesTab(cw)
	case tabCompare:
		content = a.renderCompareTab(cw)
	case tabLog:
		content = a.renderLogTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	if ed := a.editor(); ed != nil && ed.editing {
		return "[Enter] save  [Esc] cancel"
	}
	switch a.activeTab {
	case tabLog:
		return "[a] add  [d] delete  [D] clear  [m] month  [?] help"
	case tabSettings:
		return "[j/k] move  [Enter] edit  [?] help"
	default:
		return "[j/k] move  [Enter] edit  [y] copy price  [e/p] export  [?] help"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
