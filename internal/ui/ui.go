package ui

import (
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/slidex/internal/color"
	"github.com/desertthunder/slidex/internal/media"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/playback"
	"github.com/desertthunder/slidex/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PickerView ViewState = iota
	PlayerView
)

// FileSource serves slide file bodies and their public URLs.
type FileSource interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	URL(path string) string
}

// Launcher opens a URL in an external player.
type Launcher interface {
	Launch(url string) error
}

// imageKey identifies the file an image fetch was issued for.
type imageKey struct {
	slideID models.ID
	index   int
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	provider services.SlideProvider
	files    FileSource
	launcher Launcher
	logger   *log.Logger

	player      *playback.Controller
	screen      *altScreen
	states      chan struct{}
	unsubscribe func()

	clock    playback.Clock
	interval float64
	lighten  int
	startID  string

	width   int
	height  int
	list    list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	input   textinput.Model
	editing bool
	loading bool

	requested    string   // id of the latest slide fetch; older responses are dropped
	shown        imageKey // file the backdrop and image belong to
	loadingImage bool
	img          image.Image
	top          color.Sample
	bottom       color.Sample
	altScreen    bool
	status       string
	err          error
}

// Option configures a [Model].
type Option func(*Model)

// WithLauncher sets the external player used for video files.
func WithLauncher(l Launcher) Option {
	return func(m *Model) { m.launcher = l }
}

// WithLogger sets the logger. The TUI should log to a file.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithInterval sets the initial autoplay interval in seconds.
func WithInterval(seconds float64) Option {
	return func(m *Model) { m.interval = seconds }
}

// WithLighten sets how much the top of the backdrop gradient is brightened.
func WithLighten(amount int) Option {
	return func(m *Model) { m.lighten = amount }
}

// WithSlide opens the player on slide id instead of the picker.
func WithSlide(id string) Option {
	return func(m *Model) { m.startID = id }
}

// WithClock replaces the autoplay clock.
func WithClock(c playback.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, provider services.SlideProvider, files FileSource, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		view:     PickerView,
		provider: provider,
		files:    files,
		logger:   log.Default(),
		clock:    playback.TickerClock{},
		interval: playback.DefaultInterval,
		lighten:  color.DefaultLighten,
		help:     help.New(),
		keys:     newKeyMap(),
		top:      color.Fallback,
		bottom:   color.Fallback,
		screen:   &altScreen{},
		states:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.launcher == nil {
		m.launcher = media.NewLauncher("", nil, m.logger)
	}

	m.player = playback.New(
		playback.WithClock(m.clock),
		playback.WithFullscreener(m.screen),
		playback.WithLogger(m.logger),
		playback.WithInterval(m.interval),
	)
	m.unsubscribe = m.player.Subscribe(func(playback.State) { m.signal() })

	m.list = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.list.Title = "Slides"
	m.list.Filter = fuzzyFilter

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.input = textinput.New()
	m.input.Prompt = "interval (s): "
	m.input.Placeholder = "3"
	m.input.CharLimit = 8

	if m.startID != "" {
		m.view = PlayerView
	}
	return m
}

// Init starts the spinner, the state listener and the first fetch.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitForState()}
	if m.startID != "" {
		_, cmd := m.open(m.startID)
		cmds = append(cmds, cmd)
	} else {
		m.loading = true
		cmds = append(cmds, m.fetchSlides())
	}
	return tea.Batch(cmds...)
}

// Close stops autoplay and detaches the model from the controller. Safe to call more than once.
func (m *Model) Close() {
	m.unsubscribe()
	m.player.Close()
}

// Player exposes the playback controller.
func (m *Model) Player() *playback.Controller { return m.player }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.view {
		case PickerView:
			return m.handlePickerKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case PickerView:
		return m.renderPicker()
	case PlayerView:
		return m.renderPlayer()
	default:
		return ""
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSlidesFetched:
		data := msg.data.(slidesFetched)
		m.loading = false
		if data.err != nil {
			m.err = data.err
			m.logger.Error("failed to list slides", "error", data.err)
			return m, nil
		}
		m.err = nil
		return m, m.list.SetItems(slideItems(data.slides))

	case MsgSlideFetched:
		data := msg.data.(slideFetched)
		if data.id != m.requested {
			m.logger.Debug("dropping stale slide response", "id", data.id, "current", m.requested)
			return m, nil
		}
		m.loading = false
		if data.err != nil {
			m.logger.Error("failed to fetch slide", "id", data.id, "error", data.err)
			m.player.Load(models.Slide{})
		} else {
			m.player.Load(*data.slide)
		}
		return m, m.afterTransition()

	case MsgImageLoaded:
		data := msg.data.(imageLoaded)
		if (imageKey{data.slideID, data.index}) != m.shown {
			return m, nil
		}
		m.loadingImage = false
		if data.err != nil {
			m.logger.Warn("failed to load image", "slide", data.slideID, "index", data.index, "error", data.err)
		}
		m.img = data.img
		m.top, m.bottom = color.Gradient(data.sample, m.lighten)
		return m, nil

	case MsgStateChanged:
		return m, tea.Batch(m.afterTransition(), m.waitForState())

	case MsgLaunched:
		data := msg.data.(launched)
		if data.err != nil {
			m.status = styles.err.Render(data.err.Error())
		} else {
			m.status = fmt.Sprintf("opened %s", data.name)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, m.fetchSlides()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.list.SelectedItem().(slideItem); ok {
			return m.open(item.slide.ID.String())
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != PickerView {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// open switches to the player and fetches slide id.
func (m *Model) open(id string) (tea.Model, tea.Cmd) {
	m.view = PlayerView
	m.requested = id
	m.loading = true
	m.status = ""
	m.player.Load(models.Slide{})
	return m, tea.Batch(m.fetchSlide(id), m.afterTransition())
}

// back returns to the picker, stopping playback and leaving fullscreen.
func (m *Model) back() (tea.Model, tea.Cmd) {
	m.view = PickerView
	m.requested = ""
	m.loading = false
	m.editing = false
	m.input.Blur()
	m.status = ""
	m.player.Load(models.Slide{})
	m.player.SyncFullscreen(false)

	cmds := []tea.Cmd{m.afterTransition()}
	if len(m.list.Items()) == 0 {
		m.loading = true
		cmds = append(cmds, m.fetchSlides())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

func (m *Model) fetchSlides() tea.Cmd {
	return func() tea.Msg {
		slides, err := m.provider.ListSlides(m.ctx)
		return slidesFetchedMsg(slides, err)
	}
}

func (m *Model) fetchSlide(id string) tea.Cmd {
	return func() tea.Msg {
		slide, err := m.provider.GetSlide(m.ctx, id)
		return slideFetchedMsg(id, slide, err)
	}
}

// signal marks the controller state as changed. A pending signal already covers this change.
func (m *Model) signal() {
	select {
	case m.states <- struct{}{}:
	default:
	}
}

// waitForState blocks until the controller reports a change or the context ends.
func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.states:
			return stateChangedMsg()
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) renderPicker() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if m.loading && len(m.list.Items()) == 0 {
		return fmt.Sprintf("%s Loading slides...\n\n%s", m.spinner.View(), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.list.View(), helpView)
}
