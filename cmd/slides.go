package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/desertthunder/slidex/internal/formatter"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/urfave/cli/v3"
)

// slideSummary is the listing row shared by the list and search commands.
type slideSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Files int    `json:"files"`
}

func summarize(s models.Slide) slideSummary {
	return slideSummary{ID: s.ID.String(), Title: s.Title, Files: s.Len()}
}

func (r *Runner) writeSummaries(header string, rows []slideSummary, asJSON bool) error {
	if asJSON {
		if rows == nil {
			rows = []slideSummary{}
		}
		return r.writeJSON(rows, true)
	}

	r.writePlainHeader(header)
	if len(rows) == 0 {
		return r.writePlain("No slides found\n")
	}
	for _, row := range rows {
		title := row.Title
		if title == "" {
			title = "Untitled"
		}
		r.writePlain("%-8s %s (%s)\n", row.ID, title, shared.Pluralize(row.Files, "file", "files"))
	}
	return r.writePlainln("Total: %s", shared.Pluralize(len(rows), "slide", "slides"))
}

// SlidesList lists slides from the API, or from the local cache with --cached.
func (r *Runner) SlidesList(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("cached") {
		return r.listCachedSlides(cmd.Bool("json"))
	}

	slides, err := r.provider().ListSlides(ctx)
	if err != nil {
		return fmt.Errorf("failed to list slides: %w", err)
	}
	r.logger.Debug("fetched slides", "count", len(slides))

	rows := make([]slideSummary, len(slides))
	for i, s := range slides {
		rows[i] = summarize(s)
	}
	return r.writeSummaries("Slides", rows, cmd.Bool("json"))
}

func (r *Runner) listCachedSlides(asJSON bool) error {
	repo, _, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	cached, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list cached slides: %w", err)
	}

	rows := make([]slideSummary, len(cached))
	for i, c := range cached {
		rows[i] = summarize(c.Slide())
	}
	return r.writeSummaries("Cached slides", rows, asJSON)
}

// SlidesShow prints one slide in the requested format, or writes it to --output.
func (r *Runner) SlidesShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.String("id"))
	if id == "" {
		return fmt.Errorf("%w: slide ID is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	slide, err := r.provider().GetSlide(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch slide %s: %w", id, err)
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(r.fs, *slide, format, output, r.config.Storage.BaseURL)
		if err != nil {
			return err
		}
		r.logger.Info("exported slide", "id", id, "format", format, "path", path)
		return r.writePlain("✓ Exported %s to %s\n", slide.Title, path)
	}

	data, err := formatter.Render(*slide, format, r.config.Storage.BaseURL)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if format == formatter.FormatJSON {
		return r.writePlain("\n")
	}
	return nil
}

// SlidesCreate uploads the named files as a new slide.
func (r *Runner) SlidesCreate(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.String("title"))
	if title == "" {
		return fmt.Errorf("%w: --title is required", shared.ErrMissingArgument)
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one FILE is required", shared.ErrMissingArgument)
	}

	uploads := make([]models.Upload, 0, len(paths))
	for _, path := range paths {
		f, err := r.fs.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		uploads = append(uploads, models.Upload{Name: filepath.Base(path), Body: f})
	}

	r.logger.Info("creating slide", "title", title, "files", len(uploads))
	slide, err := r.provider().CreateSlide(ctx, title, uploads)
	if err != nil {
		return fmt.Errorf("failed to create slide: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(slide, true)
	}
	r.writePlain("✓ Slide created: %s\n", slide.Title)
	r.writePlain("  ID: %s\n", slide.ID)
	return r.writePlain("  Files: %d\n", slide.Len())
}

// SlidesSearch ranks slide titles against QUERY by fuzzy distance, closest first.
func (r *Runner) SlidesSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	slides, err := r.provider().ListSlides(ctx)
	if err != nil {
		return fmt.Errorf("failed to list slides: %w", err)
	}

	rows := searchSlides(query, slides)
	return r.writeSummaries(fmt.Sprintf("Results for %q", query), rows, cmd.Bool("json"))
}

func searchSlides(query string, slides []models.Slide) []slideSummary {
	titles := make([]string, len(slides))
	for i, s := range slides {
		titles[i] = s.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	rows := make([]slideSummary, len(ranks))
	for i, rank := range ranks {
		rows[i] = summarize(slides[rank.OriginalIndex])
	}
	return rows
}
