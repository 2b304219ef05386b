package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// Part is one named part of a multipart/form-data body.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// JSONPart encodes value as a JSON part.
func JSONPart(name string, value interface{}) (Part, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return Part{}, &c8y.EncodeError{Source: "part " + name, Err: err}
	}

	return Part{Name: name, ContentType: c8y.MediaTypeJSON, Data: data}, nil
}

// FilePart returns a file part. An empty contentType defaults to
// application/octet-stream.
func FilePart(name, filename, contentType string, data []byte) Part {
	if contentType == "" {
		contentType = c8y.MediaTypeOctetStream
	}

	return Part{Name: name, Filename: filename, ContentType: contentType, Data: data}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Multipart encodes parts as a multipart/form-data body. It returns the body
// and the content type carrying the boundary.
func Multipart(parts ...Part) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, part := range parts {
		disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(part.Name))
		if part.Filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(part.Filename))
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", disposition)

		if part.ContentType != "" {
			header.Set("Content-Type", part.ContentType)
		}

		w, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", &c8y.EncodeError{Source: "part " + part.Name, Err: err}
		}

		_, err = w.Write(part.Data)
		if err != nil {
			return nil, "", &c8y.EncodeError{Source: "part " + part.Name, Err: err}
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", &c8y.EncodeError{Source: "multipart body", Err: err}
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
