package mcgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoWords is returned for a words file without any instruction word.
var ErrNoWords = errors.New("no words found")

// ReadWordsFile parses a ROM image, see ParseWords.
func ReadWordsFile(path string) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file: %w", err)
	}
	defer f.Close()

	words, err := ParseWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// ParseWords reads one 16-bit word per line. Words may be written in
// binary (0b0001001000110100), hex (0x1234) or decimal. Blank lines and
// text after '#' or "//" are ignored.
func ParseWords(r io.Reader) ([]uint16, error) {
	var words []uint16
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		text = strings.ReplaceAll(strings.TrimSpace(text), "_", "")
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid word %q: %w", line, text, err)
		}
		words = append(words, uint16(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}
