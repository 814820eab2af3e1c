package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/desertthunder/explorer/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUIMovies launches the interactive movie explorer.
func (r *Runner) TUIMovies(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMovies(); err != nil {
		return err
	}

	src := browse.NewMovieSource(r.movies)
	return r.runTUI(ctx, ui.Options{
		Source:    src,
		Details:   src,
		Posters:   r.movies,
		StartPath: cmd.String("path"),
	})
}

// TUIMusic launches the interactive music explorer. Signing in happens through `music login`.
func (r *Runner) TUIMusic(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	return r.runTUI(ctx, ui.Options{
		Source:    browse.NewMusicSource(r.spotify, r.config.UI.PageSize),
		Session:   r.session,
		StartPath: cmd.String("path"),
	})
}

func (r *Runner) runTUI(ctx context.Context, opts ui.Options) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	f, err := shared.OpenLogFile(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer f.Close()
	r.logger.SetOutput(f)
	defer r.logger.SetOutput(os.Stderr)

	opts.Logger = shared.WithLogger(r.logger, "variant", opts.Source.Variant())
	opts.Debounce = r.config.Debounce()

	model := ui.NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
