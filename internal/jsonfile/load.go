// ABOUTME: JSON file loader with BOM stripping, text pre-transform and reviver
// ABOUTME: Returns the ordered document model used for package manifests

package jsonfile

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// LoadOptions customizes parsing.
type LoadOptions struct {
	// BeforeParse transforms the raw text before it is parsed.
	BeforeParse func(text string) string
	// Reviver is called bottom-up for every value with its key (array index
	// for array items, "" for the root). Returning false drops an object
	// member; dropped array items become null.
	Reviver func(key string, value any) (any, bool)
}

// Load reads and parses the JSON file at path.
func Load(path string, opts LoadOptions) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

// LoadObject is Load for files whose top-level value must be an object.
func LoadObject(path string, opts LoadOptions) (*Object, error) {
	v, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		return nil, fmt.Errorf("parsing %s: top-level value is not an object", path)
	}
	return obj, nil
}

// Parse decodes data after removing a UTF-8 byte order mark.
func Parse(data []byte, opts LoadOptions) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if opts.BeforeParse != nil {
		data = []byte(opts.BeforeParse(string(data)))
	}

	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if opts.Reviver == nil {
		return v, nil
	}
	revived, keep := revive("", v, opts.Reviver)
	if !keep {
		return nil, nil
	}
	return revived, nil
}

func revive(key string, v any, reviver func(string, any) (any, bool)) (any, bool) {
	switch val := v.(type) {
	case *Object:
		for pair := val.Oldest(); pair != nil; {
			next := pair.Next()
			child, keep := revive(pair.Key, pair.Value, reviver)
			if keep {
				val.Set(pair.Key, child)
			} else {
				val.Delete(pair.Key)
			}
			pair = next
		}
	case []any:
		for i, item := range val {
			child, keep := revive(strconv.Itoa(i), item, reviver)
			if !keep {
				child = nil
			}
			val[i] = child
		}
	}
	return reviver(key, v)
}
