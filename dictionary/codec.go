// Package dictionary reads and writes flat JSON translation dictionaries.
//
// Key order is preserved on load and written back as-is, so a dictionary
// that is loaded and saved without changes is byte-identical.
package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ZaguanLabs/i18nsync"
)

const indent = "    "

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a flat JSON object of string values, keeping key order.
// A repeated key keeps its first position and its last value.
func Parse(data []byte) (*i18nsync.Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	m := i18nsync.NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("value for key %q is not a string", key)
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}

	return m, nil
}

// Marshal encodes m as a JSON object with 4-space indentation, one key per
// line, non-ASCII and HTML characters written literally and a trailing
// newline. An empty mapping is written as "{}".
func Marshal(m *i18nsync.Mapping) ([]byte, error) {
	if m.Len() == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")

	keys := m.Keys()
	for i, key := range keys {
		value, _ := m.Get(key)

		buf.WriteString(indent)
		if err := writeString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeString(&buf, value); err != nil {
			return nil, err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(unescapeSeparators(bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))))
	return nil
}

// unescapeSeparators turns the \u2028 and \u2029 escapes that encoding/json
// always emits back into the raw characters. An escape preceded by an
// escaped backslash is text and stays as it is.
func unescapeSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		rest := b[i:]
		switch {
		case bytes.HasPrefix(rest, []byte(`\\`)):
			out = append(out, rest[:2]...)
			i++
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, b[i])
		}
	}
	return out
}
