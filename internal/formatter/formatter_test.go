package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/desertthunder/explorer/internal/models"
)

func TestFormatters(t *testing.T) {
	t.Run("FormatDate", func(t *testing.T) {
		tc := []struct{ in, want string }{
			{"2008-07-16", "7/16/2008"},
			{"2021-03", "3/1/2021"},
			{"1999", "1/1/1999"},
			{"", Unknown},
			{"soon", "soon"},
		}
		for _, tt := range tc {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatRuntime", func(t *testing.T) {
		tc := []struct {
			in   int
			want string
		}{
			{152, "2h 32m"},
			{45, "0h 45m"},
			{60, "1h 0m"},
			{0, Unknown},
		}
		for _, tt := range tc {
			if got := FormatRuntime(tt.in); got != tt.want {
				t.Errorf("FormatRuntime(%d) = %v, want %v", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatMoney", func(t *testing.T) {
		tc := []struct {
			in   int64
			want string
		}{
			{185000000, "$185,000,000"},
			{999, "$999"},
			{0, Unknown},
			{-1500, "-$1,500"},
		}
		for _, tt := range tc {
			if got := FormatMoney(tt.in); got != tt.want {
				t.Errorf("FormatMoney(%d) = %v, want %v", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatDuration", func(t *testing.T) {
		tc := []struct {
			in   int
			want string
		}{
			{201000, "3:21"},
			{59600, "1:00"},
			{5000, "0:05"},
			{0, "0:00"},
			{-10, "0:00"},
		}
		for _, tt := range tc {
			if got := FormatDuration(tt.in); got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatNumber", func(t *testing.T) {
		if got := FormatNumber(1234567); got != "1,234,567" {
			t.Errorf("expected 1,234,567, got %s", got)
		}
	})

	t.Run("FormatRating", func(t *testing.T) {
		if got := FormatRating(7.25); got != "7.2" && got != "7.3" {
			t.Errorf("unexpected rating %s", got)
		}
	})
}

func TestExporters(t *testing.T) {
	items := []models.Item{
		models.MovieItem(models.Movie{ID: 1, Title: "Batman", ReleaseDate: "1989-06-23", VoteAverage: 7.2, Popularity: 40}),
		models.TrackItem(models.Track{ID: "t1", Name: "Song, With Comma", DurationMS: 201000, Popularity: 80,
			Artists: []models.Artist{{Name: "Artist One"}}}),
	}

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(items)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d", len(records))
		}
		if records[0][0] != "Kind" {
			t.Errorf("CSV missing headers, got %v", records[0])
		}
		if records[1][0] != "movie" || records[1][2] != "Batman" {
			t.Errorf("unexpected movie row %v", records[1])
		}
		if records[2][2] != "Song, With Comma" || records[2][6] != "3:21" {
			t.Errorf("unexpected track row %v", records[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Search: batman", items)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "# Search: batman\n") {
			t.Errorf("missing heading, got %s", output)
		}
		if !strings.Contains(output, "1. **Batman** - 1989-06-23 [7.2]") {
			t.Errorf("missing movie line, got %s", output)
		}
		if !strings.Contains(output, "2. **Song, With Comma** - Artist One [3:21]") {
			t.Errorf("missing track line, got %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText("Popular", items)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "Results: 2") {
			t.Errorf("missing count, got %s", data)
		}
	})

	t.Run("Export Dispatch", func(t *testing.T) {
		for _, format := range []string{"csv", "markdown", "md", "txt", "text"} {
			if _, err := Export(format, "t", items); err != nil {
				t.Errorf("Export(%q) failed: %v", format, err)
			}
		}
		if _, err := Export("pdf", "t", items); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
