package output

import (
	"encoding/json"
	"io"

	"github.com/pharmaguard/pharmaguard/internal/schema"
)

// JSONWriter writes assessment documents as a pretty-printed JSON array.
type JSONWriter struct {
	w    io.Writer
	docs []schema.Output
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteHeader is a no-op; the array is emitted in full on Flush.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write buffers a single assessment document.
func (jw *JSONWriter) Write(out schema.Output) error {
	jw.docs = append(jw.docs, out)
	return nil
}

// Flush encodes the buffered documents to the underlying writer.
func (jw *JSONWriter) Flush() error {
	if jw.docs == nil {
		jw.docs = []schema.Output{}
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jw.docs)
}
