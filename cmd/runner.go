package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slidex/internal/blobcache"
	"github.com/desertthunder/slidex/internal/repositories"
	"github.com/desertthunder/slidex/internal/services"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	slides     services.SlideProvider
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	fs         afero.Fs
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Slides     services.SlideProvider
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Fs         afero.Fs
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	return &Runner{
		config:     opts.Config,
		slides:     opts.Slides,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		fs:         opts.Fs,
	}
}

// Before loads the configuration named by --config, applies environment overrides and builds the
// API client. A missing config file means defaults.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		config = loaded
	}

	if err := config.ApplyEnv(cmd.String("env")); err != nil {
		return ctx, err
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}

	r.configure(config, path)
	return ctx, nil
}

func (r *Runner) configure(config *shared.Config, path string) {
	r.config = config
	r.configPath = path
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Logging.Level))

	if r.httpClient == http.DefaultClient {
		r.httpClient = services.NewHTTPClient(config.Timeout())
	}
	if r.slides == nil {
		r.slides = services.NewSlideService(config.API.BaseURL, r.httpClient)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		slidesCommand, playCommand, previewCommand, cacheCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// provider returns the slide API client, building one from the config when Before never ran.
func (r *Runner) provider() services.SlideProvider {
	if r.slides == nil {
		r.configure(r.config, r.configPath)
	}
	return r.slides
}

// openStore opens the metadata database and the blob cache named by the config.
// The returned func closes both.
func (r *Runner) openStore() (*repositories.SlideRepository, *blobcache.Cache, func(), error) {
	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	cache, err := blobcache.Open(r.config.Cache.Path)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to open blob cache: %w", err)
	}

	closeFn := func() {
		if err := cache.Close(); err != nil {
			r.logger.Warn("failed to close blob cache", "error", err)
		}
		if err := db.Close(); err != nil {
			r.logger.Warn("failed to close database", "error", err)
		}
	}
	return repositories.NewSlideRepository(db), cache, closeFn, nil
}

// fileStore returns a file store backed by the blob cache when it can be opened, and a
// network-only store otherwise.
func (r *Runner) fileStore() (*services.FileStore, func()) {
	cache, err := blobcache.Open(r.config.Cache.Path)
	if err != nil {
		r.logger.Warn("blob cache unavailable, fetching files uncached", "error", err)
		return services.NewFileStore(r.config.Storage.BaseURL, r.httpClient, nil, r.logger), func() {}
	}

	files := services.NewFileStore(r.config.Storage.BaseURL, r.httpClient, cache, r.logger)
	return files, func() {
		if err := cache.Close(); err != nil {
			r.logger.Warn("failed to close blob cache", "error", err)
		}
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
