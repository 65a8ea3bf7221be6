package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object with a guaranteed field order,
// which encoding/json alone does not offer. The ledger file is meant to
// be read and diffed by humans, so field order matters.
//
// The zero value is ready to use.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// Append adds a key/value pair, marshaling the value with json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	b, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(&w.buf, "%q:", key)
	w.buf.Write(b)
	w.buf.WriteByte(',')
	return w
}

// Optional is Append, skipped when the value is its type's zero value.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// EmbedFrom marshals a value to a JSON object and splices its fields
// into the object under construction.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("marshal for embedding: %w", err)
		return w
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) >= 2 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if len(trimmed) > 0 {
		w.buf.Write(trimmed)
		w.buf.WriteByte(',')
	}
	return w
}

// MarshalJSON closes the object and returns it. It satisfies
// json.Marshaler so a writer can be passed to json.Marshal directly.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.buf.Bytes(), []byte(","))
	out := make([]byte, 0, len(content)+2)
	out = append(out, '{')
	out = append(out, content...)
	out = append(out, '}')
	return out, nil
}
