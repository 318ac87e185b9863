package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/slidex/internal/color"
	"github.com/desertthunder/slidex/internal/media"
	"github.com/desertthunder/slidex/internal/playback"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/desertthunder/slidex/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	defaultTUILog  = "./tmp/slidex-tui.log"
	previewColumns = 80
)

// terminalSize reports the size of stdout, or ok=false when stdout is not a terminal.
var terminalSize = func() (width, height int, ok bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// Play launches the interactive slide picker and player.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	interval := r.config.Playback.IntervalSeconds
	if cmd.IsSet("interval") {
		interval = cmd.Float("interval")
	}
	if !playback.ValidInterval(interval) {
		return fmt.Errorf("%w: interval must be between %gs and %gs, got %v",
			shared.ErrInvalidFlag, playback.MinInterval, playback.MaxInterval, interval)
	}

	logPath := r.config.Logging.File
	if logPath == "" {
		logPath = defaultTUILog
	}
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Logging.Level))

	files, closeFiles := r.fileStore()
	defer closeFiles()

	opts := []ui.Option{
		ui.WithLogger(fileLogger),
		ui.WithLauncher(media.NewLauncher(r.config.Player.Command, r.config.Player.Args, fileLogger)),
		ui.WithInterval(interval),
		ui.WithLighten(r.config.Playback.LightenAmount),
	}
	if id := strings.TrimSpace(cmd.String("id")); id != "" {
		opts = append(opts, ui.WithSlide(id))
	}

	model := ui.NewModel(ctx, r.provider(), files, opts...)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// Preview prints one file of a slide. Images are drawn as half blocks under a line describing
// their average color; other files are described by name, type and URL.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.String("id"))
	if id == "" {
		return fmt.Errorf("%w: slide ID is required", shared.ErrMissingArgument)
	}

	slide, err := r.provider().GetSlide(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch slide %s: %w", id, err)
	}

	index := int(cmd.Int("index"))
	if index < 0 || index >= slide.Len() {
		return fmt.Errorf("%w: index %d out of range for %s", shared.ErrInvalidArgument, index,
			shared.Pluralize(slide.Len(), "file", "files"))
	}
	file := slide.Files[index]

	width, height := previewColumns, previewColumns/2
	if w, h, ok := terminalSize(); ok {
		width, height = w, max(1, h-4)
	}
	if cmd.IsSet("width") {
		width = int(cmd.Int("width"))
		if width <= 0 {
			return fmt.Errorf("%w: width must be positive", shared.ErrInvalidFlag)
		}
	}

	files, closeFiles := r.fileStore()
	defer closeFiles()

	r.writePlain("%s [%d/%d] %s\n", slide.Title, index+1, slide.Len(), file.Name())

	if media.KindOf(file) != media.Image {
		r.writePlain("type: %s\n", media.TypeOf(file))
		return r.writePlain("url:  %s\n", files.URL(file.Path))
	}

	data, err := files.Fetch(ctx, file.Path)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", file.Path, err)
	}

	sample, img := color.SampleReader(bytes.NewReader(data))
	if img == nil {
		return fmt.Errorf("%w: cannot decode %s", shared.ErrInvalidInput, file.Path)
	}

	top, bottom := color.Gradient(sample, r.config.Playback.LightenAmount)
	r.writePlain("average: %s  gradient: %s → %s\n", sample.Hex(), top.Hex(), bottom.Hex())
	return r.writePlain("%s\n", media.RenderHalfBlocks(img, width, height))
}
