package formatter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
	th "github.com/desertthunder/slidex/internal/testing"
	"github.com/spf13/afero"
)

const storage = "https://files.example.com/"

func TestExporters(t *testing.T) {
	slide := th.SampleSlide()

	t.Run("ToText", func(t *testing.T) {
		data, err := ToText(slide, storage)
		if err != nil {
			t.Fatalf("ToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Slide: Holiday") {
			t.Errorf("Text missing title")
		}
		if !strings.Contains(output, "ID: 42") {
			t.Errorf("Text missing id")
		}
		if !strings.Contains(output, "Files: 3") {
			t.Errorf("Text missing file count")
		}
		if !strings.Contains(output, "1. beach.png [image]") {
			t.Errorf("Text missing file1, got: %s", output)
		}
		if !strings.Contains(output, "3. waves.mp4 [video]") {
			t.Errorf("Text missing file3, got: %s", output)
		}
		if !strings.Contains(output, "https://files.example.com/sunset.jpg") {
			t.Errorf("Text missing file URL")
		}

		t.Run("without storage base", func(t *testing.T) {
			data, _ := ToText(slide, "")
			if strings.Contains(string(data), "http") {
				t.Errorf("Text should not list URLs, got: %s", data)
			}
		})
	})

	t.Run("ToMarkdown", func(t *testing.T) {
		data, err := ToMarkdown(slide, storage)
		if err != nil {
			t.Fatalf("ToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Holiday") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Files**: 3") {
			t.Errorf("Markdown missing file count")
		}
		if !strings.Contains(output, "1. ![beach.png](https://files.example.com/beach.png)") {
			t.Errorf("Markdown missing embedded image, got: %s", output)
		}
		if !strings.Contains(output, "3. [waves.mp4](https://files.example.com/waves.mp4) (video/mp4)") {
			t.Errorf("Markdown missing video link, got: %s", output)
		}

		t.Run("empty slide", func(t *testing.T) {
			data, _ := ToMarkdown(models.Slide{ID: "1", Title: "Empty"}, storage)
			if strings.Contains(string(data), "## Files") {
				t.Errorf("Markdown should omit files section")
			}
		})
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(slide, false)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}

		var decoded models.Slide
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("ToJSON produced invalid JSON: %v", err)
		}
		if decoded.ID != "42" || decoded.Len() != 3 || decoded.Files[2].Type != "video/mp4" {
			t.Errorf("unexpected decoded slide: %+v", decoded)
		}

		t.Run("pretty", func(t *testing.T) {
			data, _ := ToJSON(slide, true)
			if !strings.Contains(string(data), "\n  \"title\": \"Holiday\"") {
				t.Errorf("expected indented JSON, got: %s", data)
			}
		})

		t.Run("no files", func(t *testing.T) {
			data, _ := ToJSON(models.Slide{ID: "1"}, false)
			if !strings.Contains(string(data), `"files":[]`) {
				t.Errorf("expected empty files array, got: %s", data)
			}
		})
	})

	t.Run("ToCSV", func(t *testing.T) {
		data, err := ToCSV(slide, storage)
		if err != nil {
			t.Fatalf("ToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Position,Name,Path,Type,Kind,URL") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2,sunset.jpg,sunset.jpg,image/jpeg,image,https://files.example.com/sunset.jpg") {
			t.Errorf("CSV missing file2, got: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"txt", FormatText},
		{"Markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"json", FormatJSON},
		{" csv ", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestWriters(t *testing.T) {
	slide := th.SampleSlide()

	t.Run("WriteExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			fs := afero.NewMemMapFs()

			path, err := WriteExport(fs, slide, FormatMarkdown, "", storage)
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}
			if path != "slide_42.md" {
				t.Errorf("Expected 'slide_42.md', got '%s'", path)
			}

			content, err := afero.ReadFile(fs, path)
			if err != nil {
				t.Fatalf("failed to read export: %v", err)
			}
			if !strings.Contains(string(content), "# Holiday") {
				t.Errorf("export missing title")
			}
		})

		t.Run("WithNestedPath", func(t *testing.T) {
			fs := afero.NewMemMapFs()

			path, err := WriteExport(fs, slide, FormatJSON, "exports/holiday/slide.json", storage)
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}
			if ok, _ := afero.Exists(fs, path); !ok {
				t.Errorf("expected %s to exist", path)
			}
		})

		t.Run("OnDisk", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			path, err := WriteExport(afero.NewOsFs(), slide, FormatText, "", "")
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}

			th.AssertFileExists(t, path)
			if content := th.MustReadFile(t, path); !strings.Contains(content, "Slide: Holiday") {
				t.Errorf("text export missing title")
			}
		})

		t.Run("ReadOnly", func(t *testing.T) {
			fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
			if _, err := WriteExport(fs, slide, FormatText, "out.txt", ""); err == nil {
				t.Error("expected write to a read-only fs to fail")
			}
		})

		t.Run("UnknownFormat", func(t *testing.T) {
			if _, err := WriteExport(afero.NewMemMapFs(), slide, Format("pdf"), "", ""); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})
}
