package requests

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const (
	textPlain = "text/plain"
	pdfType   = "application/pdf"
)

// MaxFileSize bounds files read from disk for upload.
const MaxFileSize = 10 << 20

// Content is what ends up in the content fields of a notes or question
// request.
type Content struct {
	Content  string
	Method   UploadMethod
	FileType string
	FileName *string
}

// ReadFile loads a file for upload. PDFs are sent base64 encoded for the
// backend to extract; everything else is sent as text.
func ReadFile(path string) (Content, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Content{}, &ValidationError{Field: "file", Message: "Failed to read file content", Err: err}
	}
	if info.IsDir() {
		return Content{}, invalid("file", "Please choose a file, not a directory")
	}
	if info.Size() > MaxFileSize {
		return Content{}, invalid("file", fmt.Sprintf("File is larger than %d MB", MaxFileSize>>20))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, &ValidationError{Field: "file", Message: "Failed to read file content", Err: err}
	}
	if len(data) == 0 {
		return Content{}, invalid("file", "Failed to read file content")
	}

	name := filepath.Base(path)
	typ := fileType(name)
	body := string(data)
	if typ == pdfType {
		body = base64.StdEncoding.EncodeToString(data)
	}
	return Content{Content: body, Method: UploadFile, FileType: typ, FileName: &name}, nil
}

func fileType(name string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		return textPlain
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mt
}

func resolveContent(f ContentForm) (Content, error) {
	if p := strings.TrimSpace(f.FilePath); p != "" {
		return ReadFile(p)
	}
	return Content{Content: strings.TrimSpace(f.Text), Method: UploadText, FileType: textPlain}, nil
}
