package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseHex reads a memory file with one hexadecimal instruction word per
// line, in the style of the memfile.dat images used with the Harris & Harris
// MIPS processors. Blank lines and text after '#' or "//" are ignored, and
// an optional 0x prefix is accepted. Words are laid out consecutively from
// base.
func ParseHex(r io.Reader, base uint32) (*Program, error) {
	var image []byte

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		word, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex word %q: %w", lineNo, line, err)
		}

		image = binary.BigEndian.AppendUint32(image, uint32(word))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex image: %w", err)
	}

	return FromImage(base, image), nil
}
