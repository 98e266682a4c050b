// ABOUTME: Indentation detection for existing JSON files
// ABOUTME: Picks the most frequent indent step between consecutive lines

package jsonfile

import "strings"

type indentKey struct {
	char byte
	size int
}

type indentTally struct {
	count  int // times this step was entered
	weight int // lines that stayed at this step
}

// DetectIndent returns the indentation used by text, or "" when the text is
// not indented.
func DetectIndent(text string) string {
	tallies := make(map[indentKey]*indentTally)
	var (
		prevSize int
		prevChar byte
		current  *indentTally
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		char, size := leadingIndent(line)
		if size == 0 {
			prevSize, prevChar, current = 0, 0, nil
			continue
		}
		if char != prevChar {
			prevSize = 0
		}
		prevChar = char

		diff := size - prevSize
		prevSize = size
		if diff == 0 {
			if current != nil {
				current.weight++
			}
			continue
		}
		if diff < 0 {
			diff = -diff
		}
		key := indentKey{char: char, size: diff}
		t, ok := tallies[key]
		if !ok {
			t = &indentTally{}
			tallies[key] = t
		}
		t.count++
		current = t
	}

	var (
		best      indentKey
		bestTally *indentTally
	)
	for key, t := range tallies {
		if bestTally == nil ||
			t.count > bestTally.count ||
			(t.count == bestTally.count && t.weight > bestTally.weight) ||
			(t.count == bestTally.count && t.weight == bestTally.weight && lessKey(key, best)) {
			best, bestTally = key, t
		}
	}
	if bestTally == nil {
		return ""
	}
	return strings.Repeat(string(best.char), best.size)
}

// lessKey breaks exact ties deterministically: smaller steps first, then
// spaces before tabs.
func lessKey(a, b indentKey) bool {
	if a.size != b.size {
		return a.size < b.size
	}
	return a.char == ' ' && b.char == '\t'
}

func leadingIndent(line string) (byte, int) {
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return 0, 0
	}
	char := line[0]
	n := 0
	for n < len(line) && line[n] == char {
		n++
	}
	return char, n
}
