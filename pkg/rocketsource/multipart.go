package rocketsource

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

const defaultUploadName = "upload.csv"

// multipartForm is a multipart body of text fields and file parts, written
// in insertion order.
type multipartForm struct {
	parts []formPart
}

// formPart is a text field when content is nil, a file part otherwise.
type formPart struct {
	name        string
	value       string
	filename    string
	contentType string
	content     io.Reader
}

func (f *multipartForm) addField(name, value string) {
	f.parts = append(f.parts, formPart{name: name, value: value})
}

func (f *multipartForm) addFile(name, filename, contentType string, content io.Reader) {
	f.parts = append(f.parts, formPart{
		name:        name,
		filename:    filename,
		contentType: contentType,
		content:     content,
	})
}

// encode renders the form and returns the body with its Content-Type.
func (f *multipartForm) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.content == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("writing field %q: %w", p.name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.name), escapeQuotes(p.filename),
		))
		h.Set("Content-Type", p.contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %q: %w", p.name, err)
		}
		if _, err := io.Copy(part, p.content); err != nil {
			return nil, "", fmt.Errorf("copying part %q: %w", p.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// uploadName picks the filename for an upload part: an explicit name, then
// the name of a file-like handle, then the default.
func uploadName(explicit string, r io.Reader) string {
	if explicit != "" {
		return filepath.Base(explicit)
	}
	if named, ok := r.(interface{ Name() string }); ok && named.Name() != "" {
		return filepath.Base(named.Name())
	}
	return defaultUploadName
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
