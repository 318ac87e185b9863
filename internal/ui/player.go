package ui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/slidex/internal/color"
	"github.com/desertthunder/slidex/internal/media"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/playback"
	"github.com/desertthunder/slidex/internal/shared"
)

// barHeight is the number of rows taken by the control bar.
const barHeight = 2

// altScreen is the fullscreen host handed to the controller. The terminal's alternate screen is
// always available, so requests only get counted; the model switches screens when it sees the
// controller's flag change.
type altScreen struct {
	requests int
}

func (a *altScreen) RequestFullscreen() error {
	a.requests++
	return nil
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleIntervalInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		return m.back()
	case key.Matches(msg, m.keys.next):
		m.player.HandleKey(playback.KeyNext)
	case key.Matches(msg, m.keys.prev):
		m.player.HandleKey(playback.KeyPrev)
	case key.Matches(msg, m.keys.play):
		m.player.HandleKey(playback.KeyPlay)
	case key.Matches(msg, m.keys.fullscreen):
		m.player.HandleKey(playback.KeyFullscreen)
	case key.Matches(msg, m.keys.escape):
		m.player.HandleKey(playback.KeyEscape)
	case key.Matches(msg, m.keys.slower):
		m.setInterval(m.player.State().Interval + 1)
	case key.Matches(msg, m.keys.faster):
		iv := m.player.State().Interval
		if iv > 1 {
			iv--
		} else {
			iv = max(iv/2, playback.MinInterval)
		}
		m.setInterval(iv)
	case key.Matches(msg, m.keys.interval):
		m.editing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.open):
		return m, m.openVideo()
	default:
		return m, nil
	}

	return m, m.afterTransition()
}

func (m *Model) handleIntervalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()

		seconds, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
		if err != nil {
			m.status = styles.err.Render(fmt.Sprintf("%v: %q is not a number", shared.ErrInvalidInput, m.input.Value()))
			return m, nil
		}
		m.setInterval(seconds)
		return m, m.afterTransition()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setInterval applies a new interval. Playback stops either way.
func (m *Model) setInterval(seconds float64) {
	if err := m.player.SetInterval(seconds); err != nil {
		m.status = styles.err.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("interval set to %gs", seconds)
}

func (m *Model) openVideo() tea.Cmd {
	file, ok := m.player.Current()
	if !ok || media.KindOf(file) != media.Video {
		m.status = styles.warn.Render("current file is not a video")
		return nil
	}
	if m.files == nil {
		m.status = styles.err.Render(shared.ErrServiceUnavailable.Error())
		return nil
	}

	url := m.files.URL(file.Path)
	return func() tea.Msg {
		return launchedMsg(file.Name(), m.launcher.Launch(url))
	}
}

// afterTransition reconciles the screen with the controller: it switches the alternate screen to
// match the fullscreen flag and starts an image fetch when the slide or index changed.
func (m *Model) afterTransition() tea.Cmd {
	st := m.player.State()
	var cmds []tea.Cmd

	switch {
	case st.Fullscreen && !m.altScreen:
		m.altScreen = true
		cmds = append(cmds, tea.EnterAltScreen)
	case !st.Fullscreen && m.altScreen:
		m.altScreen = false
		cmds = append(cmds, tea.ExitAltScreen)
	}

	want := imageKey{slideID: st.SlideID, index: st.Index}
	if want != m.shown {
		m.shown = want
		m.img = nil
		m.loadingImage = false
		m.top, m.bottom = color.Gradient(color.Fallback, m.lighten)

		slide := m.player.Slide()
		if st.Index < len(slide.Files) {
			file := slide.Files[st.Index]
			if media.KindOf(file) == media.Image && m.files != nil {
				m.loadingImage = true
				cmds = append(cmds, m.loadImage(want, file))
			}
		}
	}

	return tea.Batch(cmds...)
}

// loadImage fetches, decodes and samples one image file.
func (m *Model) loadImage(k imageKey, file models.File) tea.Cmd {
	return func() tea.Msg {
		data, err := m.files.Fetch(m.ctx, file.Path)
		if err != nil {
			return imageLoadedMsg(imageLoaded{slideID: k.slideID, index: k.index, sample: color.Fallback, err: err})
		}

		sample, img := color.SampleReader(bytes.NewReader(data))
		loaded := imageLoaded{slideID: k.slideID, index: k.index, sample: sample, img: img}
		if img == nil {
			loaded.err = fmt.Errorf("%w: cannot decode %s", shared.ErrInvalidInput, file.Path)
		}
		return imageLoadedMsg(loaded)
	}
}

func (m *Model) renderPlayer() string {
	st := m.player.State()

	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	area := height
	if !st.Fullscreen {
		area = max(1, height-barHeight)
	}

	stage := paintBackdrop(m.renderStage(st, width, area), m.top, m.bottom, width, area)
	if st.Fullscreen {
		return stage
	}
	return stage + "\n" + m.renderBar(st)
}

// renderStage draws the current file, or a placeholder, for a width x height area.
func (m *Model) renderStage(st playback.State, width, height int) string {
	if m.loading {
		return m.spinner.View() + " Loading slide..."
	}
	if st.Len == 0 {
		return "No data"
	}

	file, ok := m.player.Current()
	if !ok {
		return "No data"
	}

	switch media.KindOf(file) {
	case media.Image:
		if m.img != nil {
			return media.RenderHalfBlocks(m.img, width, height)
		}
		if m.loadingImage {
			return m.spinner.View() + " " + file.Name()
		}
		return file.Name()
	case media.Video:
		return fmt.Sprintf("▶ %s\n\npress enter to open in player", file.Name())
	default:
		return fmt.Sprintf("%s (%s)", file.Name(), media.TypeOf(file))
	}
}

func (m *Model) renderBar(st playback.State) string {
	pos, total := st.Position()

	state := "⏸ paused"
	if st.Playing {
		state = styles.ok.Render("▶ playing")
	}

	title := st.Title
	if title == "" {
		title = "—"
	}

	parts := []string{
		styles.title.UnsetMarginBottom().Render(title),
		fmt.Sprintf("%d/%d", pos, total),
		state,
		fmt.Sprintf("every %gs", st.Interval),
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := styles.bar.Render(strings.Join(parts, " • "))

	if m.editing {
		return line + "\n" + m.input.View()
	}
	return line + "\n" + m.help.ShortHelpView(m.keys.playerHelp())
}
