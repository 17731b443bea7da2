// Package tui provides the terminal user interface for salonboard.
package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/commands"
	"github.com/javiermolinar/salonboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // keyboard move: a booking is grabbed and follows the cursor
	ModeModal
)

// Duration options for the booking form. Zero means the service default.
var durationOptions = []int{0, 15, 30, 45, 60, 90, 120}

// Position represents a cursor position on the board.
type Position struct {
	Column int // resource index
	Slot   int // grid slot index
}

// bookingForm holds the creation modal's inputs.
type bookingForm struct {
	at       Position
	name     textinput.Model
	service  int
	duration int // index into durationOptions
	focus    int // 0 name, 1 service, 2 duration
	err      string
	busy     bool
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store   booking.Store
	config  *config.Config
	logger  zerolog.Logger
	creator *schedule.Creator
	drag    *schedule.DragController

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Board
	layout  schedule.Layout
	date    time.Time
	state   *schedule.DayState
	loading bool
	loadErr error // last load failure for date, cleared by a successful load

	cursor Position
	mode   Mode

	// Mouse drag
	preview    schedule.Placement
	hasPreview bool
	grabOffset int // rows between the card top and the press point
	dragMoved  bool

	form    bookingForm
	overlay modalOverlay

	// Terminal dimensions and layout
	width  int
	height int
	lay    LayoutCache
	scroll int // grid rows scrolled off the top

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the model's logger.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithDate sets the initial day.
func WithDate(d time.Time) ModelOption {
	return func(m *Model) { m.date = dateutil.TruncateToDay(d) }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// New creates a new TUI model. It fails when the configured schedule does
// not form a valid time grid.
func New(store booking.Store, cfg *config.Config, opts ...ModelOption) (Model, error) {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	layout, err := Layout(cfg, t)
	if err != nil {
		return Model{}, err
	}
	styles := NewStyles(t)

	name := textinput.New()
	name.Placeholder = "Customer name"
	name.CharLimit = 128
	name.Width = 40
	name.PlaceholderStyle = styles.ModalPlaceholderStyle
	name.TextStyle = styles.ModalInputTextStyle
	name.PromptStyle = styles.ModalInputTextStyle
	name.Cursor.Style = styles.ModalInputCursorStyle
	name.Cursor.TextStyle = styles.ModalInputTextStyle

	m := Model{
		store:   store,
		config:  cfg,
		logger:  zerolog.Nop(),
		theme:   t,
		styles:  styles,
		layout:  layout,
		date:    dateutil.TruncateToDay(time.Now()),
		loading: true,
		form:    bookingForm{name: name},
		overlay: modalOverlay{bg: styles.ModalBgColor},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.creator = newCreator(store, cfg, m.logger)
	m.drag = newDragController(store, cfg, m.logger)
	m.lay = buildLayout(0, 0, cfg.Schedule.HeaderHeight, 0)
	return m, nil
}

// Layout builds the board layout from cfg. The fallback palette is the
// configured one, else the theme's, else the built-in one.
func Layout(cfg *config.Config, t *theme.Theme) (schedule.Layout, error) {
	grid, err := cfg.Grid()
	if err != nil {
		return schedule.Layout{}, err
	}
	palette := cfg.UI.Palette
	if len(palette) == 0 && t != nil {
		palette = t.Resources
	}
	if len(palette) == 0 {
		palette = schedule.DefaultPalette
	}
	return schedule.Layout{Grid: grid, Palette: slices.Clone(palette)}, nil
}

func newCreator(store booking.Store, cfg *config.Config, logger zerolog.Logger) *schedule.Creator {
	opts := []schedule.CreatorOption{schedule.WithCreatorLogger(logger)}
	if cfg.Schedule.OrphanCleanup {
		opts = append(opts, schedule.WithOrphanCleanup())
	}
	return schedule.NewCreator(store, opts...)
}

func newDragController(store booking.Store, cfg *config.Config, logger zerolog.Logger) *schedule.DragController {
	opts := []schedule.DragOption{schedule.WithDragLogger(logger)}
	if cfg.Schedule.RevertOnFailure {
		opts = append(opts, schedule.WithRevertOnFailure())
	}
	return schedule.NewDragController(nil, store, opts...)
}

// Init loads the initial day.
func (m Model) Init() tea.Cmd {
	return commands.LoadDay(m.store, m.date, m.layout)
}

// Run starts the TUI.
func Run(store booking.Store, cfg *config.Config, opts ...ModelOption) error {
	model, err := New(store, cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
