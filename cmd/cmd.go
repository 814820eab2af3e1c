// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort field; defaults to title or name, \"none\" keeps the fetched order",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "Sort order: asc or desc",
			Value: "asc",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: csv, markdown or txt",
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func pageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "page",
		Usage: "Result page",
		Value: 1,
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of results (1-50)",
		Value:   20,
	}
}

func timeRangeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "time-range",
		Aliases: []string{"t"},
		Usage:   "short_term, medium_term or long_term",
		Value:   "medium_term",
	}
}

// moviesCommand handles movie catalog operations
func moviesCommand(r *Runner) *cli.Command {
	listing := func(name, usage string, fetch movieListing) *cli.Command {
		return &cli.Command{
			Name:   name,
			Usage:  usage,
			Flags:  append(outputFlags(), pageFlag()),
			Action: r.MoviesListing(fetch),
		}
	}

	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"movie", "m"},
		Usage:   "Movie catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  append(outputFlags(), pageFlag()),
				Action: r.MoviesSearch,
			},
			listing("popular", "List popular movies", popularMovies),
			listing("now-playing", "List movies now in theaters", nowPlayingMovies),
			listing("top-rated", "List top rated movies", topRatedMovies),
			{
				Name:  "genres",
				Usage: "List movie genres",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesGenres,
			},
			{
				Name:  "show",
				Usage: "Show the details of a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesShow,
			},
			{
				Name:  "gallery",
				Usage: "Show popular, now playing and top rated movies",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only movies tagged with this genre id (repeatable)",
					},
					&cli.IntFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Only movies released in this year",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Items shown per collection",
						Value: 5,
					},
				},
				Action: r.MoviesGallery,
			},
		},
	}
}

// musicCommand handles music catalog operations
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "music",
		Usage: "Music catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in through the browser",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Redirect URL copied from the browser, instead of running the callback server",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening it",
					},
				},
				Action: r.MusicLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored access token",
				Action: r.MusicLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the sign-in state",
				Action: r.MusicStatus,
			},
			{
				Name:  "me",
				Usage: "Show the signed-in profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicMe,
			},
			{
				Name:  "search",
				Usage: "Search tracks, albums or artists",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: append(outputFlags(), limitFlag(), &cli.StringFlag{
					Name:  "type",
					Usage: "track, album or artist",
					Value: "track",
				}),
				Action: r.MusicSearch,
			},
			{
				Name:  "top",
				Usage: "Your top tracks or artists",
				Commands: []*cli.Command{
					{
						Name:   "tracks",
						Usage:  "List your top tracks",
						Flags:  append(outputFlags(), limitFlag(), timeRangeFlag()),
						Action: r.MusicTopTracks,
					},
					{
						Name:   "artists",
						Usage:  "List your top artists",
						Flags:  append(outputFlags(), limitFlag(), timeRangeFlag()),
						Action: r.MusicTopArtists,
					},
				},
			},
			{
				Name:   "new-releases",
				Usage:  "List new album releases",
				Flags:  append(outputFlags(), limitFlag()),
				Action: r.MusicNewReleases,
			},
			{
				Name:  "genres",
				Usage: "List available genre seeds",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicGenres,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the movie or music API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "service"},
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml from the built-in template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive explorer",
		Commands: []*cli.Command{
			{
				Name:   "movies",
				Usage:  "Browse the movie catalog",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "path", Usage: "Start route", Value: "/"}},
				Action: r.TUIMovies,
			},
			{
				Name:   "music",
				Usage:  "Browse the music catalog",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "path", Usage: "Start route", Value: "/"}},
				Action: r.TUIMusic,
			},
		},
	}
}
