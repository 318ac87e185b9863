package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque slide identifier. The API may send it as a JSON string or number.
type ID string

// UnmarshalJSON accepts "abc", 42 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid slide id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Slide is a titled, ordered collection of media files shown as a presentation.
type Slide struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Files []File `json:"files"`
}

// File is a single media item of a slide. Path is relative to the storage base URL.
type File struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Len returns the number of files in the slide.
func (s Slide) Len() int { return len(s.Files) }

// IsEmpty reports whether the slide carries nothing to show (the "no data" state).
func (s Slide) IsEmpty() bool { return s.ID == "" && s.Title == "" && len(s.Files) == 0 }

// Cover returns the first file, used as the slide thumbnail.
func (s Slide) Cover() (File, bool) {
	if len(s.Files) == 0 {
		return File{}, false
	}
	return s.Files[0], true
}

// Name returns the last path segment of the file.
func (f File) Name() string {
	if i := strings.LastIndex(f.Path, "/"); i >= 0 {
		return f.Path[i+1:]
	}
	return f.Path
}
