// package formatter provides functions to export subscription data to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/shared"
)

// ExportToCSV converts a subscription list to CSV format with columns: ID, Title, ChannelID
func ExportToCSV(subs []services.Subscription) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "ChannelID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, sub := range subs {
		record := []string{
			sub.ID,
			sub.Title,
			sub.Channel.ChannelID,
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

// ExportToMarkdown converts a subscription list to a Markdown channel listing
func ExportToMarkdown(subs []services.Subscription) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# YouTube Subscriptions\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(subs)))

	buf.WriteString("## Channels\n\n")
	for i, sub := range subs {
		buf.WriteString(fmt.Sprintf("%d. %s (`%s`)\n", i+1, sub.Title, sub.Channel.ChannelID))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a subscription list to plain text format
func ExportToText(subs []services.Subscription) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Subscriptions: %d\n\n", len(subs)))

	for i, sub := range subs {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, sub.Title, sub.Channel.ChannelID))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a subscription list to indented JSON
func ExportToJSON(subs []services.Subscription) ([]byte, error) {
	return shared.MarshalJSON(subs, true)
}

// WriteExport renders a subscription list in the named format and writes it to
// a single file.
//
// Defaults to subscriptions_{unix}.{ext} as the filename. Returns the path of
// the file written.
func WriteExport(subs []services.Subscription, format string, path string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "json":
		data, err = ExportToJSON(subs)
		ext = "json"
	case "csv":
		data, err = ExportToCSV(subs)
		ext = "csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(subs)
		ext = "md"
	case "txt", "text":
		data, err = ExportToText(subs)
		ext = "txt"
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("subscriptions_%d.%s", time.Now().Unix(), ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
