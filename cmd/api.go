package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/explorer/internal/services"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the movie or music API.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	service := strings.ToLower(cmd.StringArg("service"))
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	var client *services.Client
	switch service {
	case "movies", "movie", "tmdb":
		if err := r.requireMovies(); err != nil {
			return err
		}
		client = r.movies.Client()
	case "music", "spotify":
		if err := r.requireSession(); err != nil {
			return err
		}
		client = r.spotify.Client()
	default:
		return fmt.Errorf("%w: service must be movies or music, got %q", shared.ErrInvalidArgument, service)
	}

	r.logger.Info("GET request", "service", service, "path", path)

	resp, err := client.Get(ctx, path)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
