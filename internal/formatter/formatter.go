// package formatter provides functions to export slide data to various formats (plain text, Markdown, JSON, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/slidex/internal/media"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/spf13/afero"
)

// Format is an export format name accepted by the CLI.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat resolves a format name. Empty defaults to text; "md" and "txt" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// fileURL joins the storage base and a file path the same way the file store does.
func fileURL(storageBase, path string) string {
	if strings.HasSuffix(storageBase, "/") {
		path = strings.TrimPrefix(path, "/")
	}
	return storageBase + path
}

// ToText converts a slide to plain text. File URLs are listed when storageBase is set.
func ToText(slide models.Slide, storageBase string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Slide: %s\n", slide.Title)
	fmt.Fprintf(&buf, "ID: %s\n", slide.ID)
	fmt.Fprintf(&buf, "Files: %d\n\n", slide.Len())

	for i, f := range slide.Files {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, f.Name(), media.KindOf(f))
		if storageBase != "" {
			fmt.Fprintf(&buf, "   %s\n", fileURL(storageBase, f.Path))
		}
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts a slide to Markdown. Images are embedded and other files are linked.
func ToMarkdown(slide models.Slide, storageBase string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", slide.Title)
	fmt.Fprintf(&buf, "**ID**: %s\n", slide.ID)
	fmt.Fprintf(&buf, "**Files**: %d\n\n", slide.Len())

	if slide.Len() == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("## Files\n\n")
	for i, f := range slide.Files {
		url := fileURL(storageBase, f.Path)
		switch media.KindOf(f) {
		case media.Image:
			fmt.Fprintf(&buf, "%d. ![%s](%s)\n", i+1, f.Name(), url)
		default:
			fmt.Fprintf(&buf, "%d. [%s](%s) (%s)\n", i+1, f.Name(), url, media.TypeOf(f))
		}
	}

	return buf.Bytes(), nil
}

// ToJSON encodes a slide in the API's wire format.
func ToJSON(slide models.Slide, pretty bool) ([]byte, error) {
	if slide.Files == nil {
		slide.Files = []models.File{}
	}
	if pretty {
		return json.MarshalIndent(slide, "", "  ")
	}
	return json.Marshal(slide)
}

// ToCSV converts the files of a slide to CSV with columns: Position, Name, Path, Type, Kind, URL
func ToCSV(slide models.Slide, storageBase string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Name", "Path", "Type", "Kind", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, f := range slide.Files {
		record := []string{
			strconv.Itoa(i + 1),
			f.Name(),
			f.Path,
			media.TypeOf(f),
			media.KindOf(f).String(),
			fileURL(storageBase, f.Path),
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

// Render converts a slide to the given format. JSON output is indented.
func Render(slide models.Slide, format Format, storageBase string) ([]byte, error) {
	switch format {
	case FormatText:
		return ToText(slide, storageBase)
	case FormatMarkdown:
		return ToMarkdown(slide, storageBase)
	case FormatJSON:
		return ToJSON(slide, true)
	case FormatCSV:
		return ToCSV(slide, storageBase)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders a slide and writes it to path on fs, creating parent directories.
//
// Defaults to slide_{id}{ext} as the filename. Returns the path written.
func WriteExport(fs afero.Fs, slide models.Slide, format Format, path, storageBase string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("slide_%s%s", slide.ID, format.Ext())
	}

	data, err := Render(slide, format, storageBase)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
