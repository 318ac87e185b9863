// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// slidesCommand handles slide API operations
func slidesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "slides",
		Aliases: []string{"s"},
		Usage:   "List, show, create and search slides",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List slides from the API, or from the local cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "List slides held in the local cache instead of calling the API",
					},
				},
				Action: r.SlidesList,
			},
			{
				Name:  "show",
				Usage: "Show a slide and its files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Slide ID to show",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, markdown, json, csv)",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the export to a file instead of stdout",
					},
				},
				Action: r.SlidesShow,
			},
			{
				Name:      "create",
				Usage:     "Upload image and video files as a new slide",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Title of the new slide",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SlidesCreate,
			},
			{
				Name:  "search",
				Usage: "Fuzzy search slide titles",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SlidesSearch,
			},
		},
	}
}

// playCommand launches the interactive slideshow
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Browse and play slides in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Open this slide directly instead of the picker",
			},
			&cli.FloatFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Autoplay interval in seconds (defaults to playback.interval_seconds)",
			},
		},
		Action: r.Play,
	}
}

// previewCommand prints one slide file to the terminal
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Print one file of a slide as half-block art",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Slide ID",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "index",
				Usage: "Zero-based file index",
			},
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Usage:   "Width in columns (defaults to the terminal width)",
			},
		},
		Action: r.Preview,
	}
}

// cacheCommand handles opt-in slide and file caching
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cache slides and files locally",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Download slide metadata and files into the local cache",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Slide ID to sync (repeatable; defaults to every slide)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent downloads (defaults to cache.workers)",
					},
					&cli.BoolFlag{
						Name:  "skip-cached",
						Usage: "Skip files already in the blob cache",
						Value: true,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:  "list",
				Usage: "List cached slides and blob cache usage",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "remove",
				Usage: "Remove one slide and its files from the cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Slide ID to remove",
						Required: true,
					},
				},
				Action: r.CacheRemove,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached slide and file",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
