package models

import (
	"encoding/json"
	"testing"
)

func TestSlideJSON(t *testing.T) {
	t.Run("String ID", func(t *testing.T) {
		var s Slide
		body := `{"id":"abc","title":"Trip","files":[{"path":"a.jpg","type":"image/jpeg"},{"path":"b.mp4","type":"video/mp4"}]}`
		if err := json.Unmarshal([]byte(body), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.ID != "abc" || s.Title != "Trip" {
			t.Errorf("unexpected slide: %+v", s)
		}
		if s.Len() != 2 || s.Files[1].Type != "video/mp4" {
			t.Errorf("files not decoded in order: %+v", s.Files)
		}
	})

	t.Run("Numeric ID", func(t *testing.T) {
		var s Slide
		if err := json.Unmarshal([]byte(`{"id":42,"title":"x","files":[]}`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != "42" {
			t.Errorf("expected id 42, got %q", s.ID)
		}
	})

	t.Run("Null ID", func(t *testing.T) {
		var s Slide
		if err := json.Unmarshal([]byte(`{"id":null,"title":"x"}`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != "" {
			t.Errorf("expected empty id, got %q", s.ID)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		var s Slide
		if err := json.Unmarshal([]byte(`{"id":{"nested":true}}`), &s); err == nil {
			t.Error("expected error for object id")
		}
	})
}

func TestSlideHelpers(t *testing.T) {
	t.Run("IsEmpty", func(t *testing.T) {
		if !(Slide{}).IsEmpty() {
			t.Error("zero slide should be empty")
		}
		if (Slide{Title: "x"}).IsEmpty() {
			t.Error("slide with title should not be empty")
		}
	})

	t.Run("Cover", func(t *testing.T) {
		if _, ok := (Slide{}).Cover(); ok {
			t.Error("empty slide has no cover")
		}
		s := Slide{Files: []File{{Path: "one.png"}, {Path: "two.png"}}}
		if f, ok := s.Cover(); !ok || f.Path != "one.png" {
			t.Errorf("expected first file as cover, got %+v", f)
		}
	})

	t.Run("File Name", func(t *testing.T) {
		if got := (File{Path: "uploads/2024/pic.png"}).Name(); got != "pic.png" {
			t.Errorf("got %q", got)
		}
		if got := (File{Path: "pic.png"}).Name(); got != "pic.png" {
			t.Errorf("got %q", got)
		}
	})
}

func TestCachedSlide(t *testing.T) {
	slide := Slide{ID: "7", Title: "Deck", Files: []File{{Path: "a.png", Type: "image/png"}}}

	t.Run("Round Trip", func(t *testing.T) {
		c := NewCachedSlide(3, slide)
		if c.SlideID() != "7" || c.Sequence() != 3 || c.Title() != "Deck" {
			t.Errorf("unexpected cached slide: %+v", c)
		}
		back := c.Slide()
		if back.ID != slide.ID || len(back.Files) != 1 {
			t.Errorf("unexpected slide: %+v", back)
		}
	})

	t.Run("Copies Files", func(t *testing.T) {
		files := []File{{Path: "a.png"}}
		c := NewCachedSlide(1, Slide{ID: "1", Files: files})
		files[0].Path = "mutated.png"
		if c.Files()[0].Path != "a.png" {
			t.Error("cached slide should not alias caller's files")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewCachedSlide(1, Slide{}).Validate(); err == nil {
			t.Error("expected error for missing slide id")
		}
		bad := NewCachedSlide(1, Slide{ID: "1", Files: []File{{Path: ""}}})
		if err := bad.Validate(); err == nil {
			t.Error("expected error for empty file path")
		}
		if err := NewCachedSlide(1, slide).Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		c := NewCachedSlide(1, slide)
		before := c.FetchedAt()
		c.Refresh(Slide{ID: "7", Title: "Deck v2"})
		if c.Title() != "Deck v2" || len(c.Files()) != 0 {
			t.Errorf("refresh did not replace data: %+v", c)
		}
		if c.FetchedAt().Before(before) {
			t.Error("fetchedAt should not go backwards")
		}
	})
}
