package models

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// Upload is one local file to attach to a new slide.
type Upload struct {
	Name string    // file name sent in the multipart part
	Type string    // MIME type; detected when empty
	Body io.Reader // file contents
}

// DetectType fills in Type from the file extension, then from the first 512 bytes of head.
func (u *Upload) DetectType(head []byte) string {
	if u.Type != "" {
		return u.Type
	}
	if t := mime.TypeByExtension(filepath.Ext(u.Name)); t != "" {
		u.Type = t
		return t
	}
	u.Type = http.DetectContentType(head)
	return u.Type
}
