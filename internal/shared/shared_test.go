package shared

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name  string
		level string
		want  log.Level
	}{
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "mixed case warn", level: "WaRn", want: log.WarnLevel},
		{name: "warning alias", level: "warning", want: log.WarnLevel},
		{name: "error", level: " error ", want: log.ErrorLevel},
		{name: "unknown falls back to info", level: "verbose", want: log.InfoLevel},
		{name: "empty falls back to info", level: "", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.level); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "file", "files"); got != "1 file" {
		t.Errorf("got %q", got)
	}
	if got := Pluralize(0, "file", "files"); got != "0 files" {
		t.Errorf("got %q", got)
	}
	if got := Pluralize(7, "file", "files"); got != "7 files" {
		t.Errorf("got %q", got)
	}
}

func TestLoggers(t *testing.T) {
	t.Run("NewFileLogger Creates Directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "slidex.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("hello")
	})

	t.Run("GenerateID Is Unique", func(t *testing.T) {
		a, b := GenerateID(), GenerateID()
		if a == "" || a == b {
			t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
		}
	})
}
