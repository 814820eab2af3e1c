package main

import (
	"fmt"
	"strings"

	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

// sortItems applies the --sort and --order flags.
func sortItems(cmd *cli.Command, v browse.Variant, items []models.Item) ([]models.Item, error) {
	field, err := v.ParseField(cmd.String("sort"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	order, err := browse.ParseOrder(cmd.String("order"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	return browse.Sort(items, field, order), nil
}

// payloads unwraps items to their records for JSON output.
func payloads(items []models.Item) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case models.KindMovie:
			out = append(out, it.Movie)
		case models.KindTrack:
			out = append(out, it.Track)
		case models.KindAlbum:
			out = append(out, it.Album)
		case models.KindArtist:
			out = append(out, it.Artist)
		}
	}
	return out
}

func describe(it models.Item) string {
	switch it.Kind {
	case models.KindMovie:
		return fmt.Sprintf("%s • ★ %s • id %s", formatter.FormatDate(it.ReleaseDate()), formatter.FormatRating(it.Rating()), it.ID())
	case models.KindTrack:
		return fmt.Sprintf("%s • %s", it.Subtitle(), formatter.FormatDuration(it.Duration()))
	case models.KindAlbum:
		return fmt.Sprintf("%s • %s", it.Subtitle(), formatter.FormatDate(it.ReleaseDate()))
	}
	return it.Subtitle()
}

// writeItems sorts items and prints them as JSON, an export format or a numbered list.
func (r *Runner) writeItems(cmd *cli.Command, v browse.Variant, title string, items []models.Item) error {
	sorted, err := sortItems(cmd, v, items)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(payloads(sorted), cmd.Bool("pretty"))
	}

	if format := strings.ToLower(cmd.String("format")); format != "" {
		data, err := formatter.Export(format, title, sorted)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		_, err = r.output.Write(data)
		return err
	}

	r.writePlainHeader(title)
	if len(sorted) == 0 {
		return r.writePlain("No results\n")
	}
	for i, it := range sorted {
		r.writePlain("%d. %s\n", i+1, it.Name())
		r.writePlain("   %s\n", describe(it))
	}
	return nil
}
