// ABOUTME: JSON file writer: indent detection, key sorting, trailing newline
// ABOUTME: Creates parent directories and replaces the file atomically

package jsonfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mauromedda/pkgkit/internal/log"
)

const defaultIndent = "\t"

// WriteOptions controls serialization.
type WriteOptions struct {
	// Indent is the indent string; empty means a tab.
	Indent string
	// Compact writes without any whitespace and overrides Indent.
	Compact bool
	// DetectIndent reuses the indentation of the file being replaced.
	DetectIndent bool
	// SortKeys sorts object keys at every depth using Compare (byte order
	// when nil). Only applied when the top-level value is an object.
	SortKeys bool
	Compare  func(a, b string) int
	// Mode is the file mode; zero keeps the existing file's mode, or 0644.
	Mode os.FileMode
}

// Write serializes data to path. An existing file decides whether the
// output ends with a newline; a new file always does.
func Write(path string, data any, opts WriteOptions) error {
	if path == "" {
		return errors.New("expected a filepath")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if obj, ok := data.(*Object); ok && opts.SortKeys {
		data = SortKeys(obj, opts.Compare)
	}

	indent := opts.Indent
	if indent == "" {
		indent = defaultIndent
	}
	if opts.Compact {
		indent = ""
	}
	trailing := "\n"
	mode := opts.Mode

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !bytes.HasSuffix(existing, []byte("\n")) {
			trailing = ""
		}
		if opts.DetectIndent {
			indent = DetectIndent(string(existing))
			log.Debug("detected indent %q in %s", indent, path)
		}
		if mode == 0 {
			if fi, err := os.Stat(path); err == nil {
				mode = fi.Mode().Perm()
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if mode == 0 {
		mode = 0o644
	}

	out, err := Marshal(data, indent)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	out = append(out, trailing...)

	return writeAtomic(path, out, mode)
}
