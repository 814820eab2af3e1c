package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/explorer/internal/models"
)

// Format names accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Export renders items in the named format.
func Export(format, title string, items []models.Item) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(items)
	case FormatMarkdown, "md":
		return ExportToMarkdown(title, items)
	case FormatText, "text":
		return ExportToText(title, items)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ExportToCSV converts items to CSV with columns: Kind, ID, Name, Subtitle, Release Date, Popularity, Duration
func ExportToCSV(items []models.Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "ID", "Name", "Subtitle", "Release Date", "Popularity", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		duration := ""
		if item.Kind == models.KindTrack {
			duration = FormatDuration(item.Duration())
		}
		record := []string{
			item.Kind.String(),
			item.ID(),
			item.Name(),
			item.Subtitle(),
			item.ReleaseDate(),
			strconv.FormatFloat(item.Popularity(), 'f', -1, 64),
			duration,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts items to a numbered Markdown list under a heading.
func ExportToMarkdown(title string, items []models.Item) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Results**: %d\n\n", len(items))

	for i, item := range items {
		fmt.Fprintf(&buf, "%d. **%s** - %s", i+1, item.Name(), item.Subtitle())
		switch item.Kind {
		case models.KindMovie:
			fmt.Fprintf(&buf, " [%s]", FormatRating(item.Rating()))
		case models.KindTrack:
			fmt.Fprintf(&buf, " [%s]", FormatDuration(item.Duration()))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts items to plain text, one per line.
func ExportToText(title string, items []models.Item) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", title)
	fmt.Fprintf(&buf, "Results: %d\n\n", len(items))

	for i, item := range items {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, item.Name(), item.Subtitle())
	}

	return buf.Bytes(), nil
}
