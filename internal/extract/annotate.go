// Package extract pulls annotated prose lines out of source files.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultMarker is the comment marker that flags a prose line.
const DefaultMarker = "//>"

// Annotations reads src line by line and returns the prose carried by
// marker-prefixed lines, in order. The marker and at most one following
// space are stripped; every kept line contributes a trailing newline.
// Lines without the marker are ignored.
func Annotations(r io.Reader, marker string) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, marker) {
			continue
		}
		line = strings.TrimPrefix(line, marker)
		line = strings.TrimPrefix(line, " ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return b.String(), nil
}
