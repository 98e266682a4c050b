// ABOUTME: JSON encoder matching JSON.stringify layout for ordered documents
// ABOUTME: No HTML escaping, "{}"/"[]" for empties, compact when indent is empty

package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const maxIndent = 10

// Marshal encodes v with the given indent string. Values outside the
// document model (structs, plain maps, typed slices) are round-tripped
// through encoding/json first.
func Marshal(v any, indent string) ([]byte, error) {
	if len(indent) > maxIndent {
		indent = indent[:maxIndent]
	}
	var buf bytes.Buffer
	if err := encode(&buf, v, indent, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseIndent turns a configured indent into an indent string: a number
// means that many spaces, "tab" or "\t" a tab, anything else is used as is.
func ParseIndent(s string) string {
	if s == "tab" {
		return "\t"
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > maxIndent {
			n = maxIndent
		}
		if n < 0 {
			n = 0
		}
		return strings.Repeat(" ", n)
	}
	return s
}

func encode(buf *bytes.Buffer, v any, indent, prefix string) error {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		if val.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('{')
		first := true
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			newline(buf, indent, inner)
			if err := encodeScalar(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encode(buf, pair.Value, indent, inner); err != nil {
				return fmt.Errorf("key %q: %w", pair.Key, err)
			}
		}
		newline(buf, indent, prefix)
		buf.WriteByte('}')
		return nil
	case []any:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, inner)
			if err := encode(buf, item, indent, inner); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		newline(buf, indent, prefix)
		buf.WriteByte(']')
		return nil
	case nil, bool, string, json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return encodeScalar(buf, val)
	default:
		normalized, err := normalize(val)
		if err != nil {
			return err
		}
		return encode(buf, normalized, indent, prefix)
	}
}

func newline(buf *bytes.Buffer, indent, prefix string) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// normalize converts an arbitrary Go value into the document model.
func normalize(v any) (any, error) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	return Decode(tmp.Bytes())
}
