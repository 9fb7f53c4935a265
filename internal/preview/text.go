package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"quickswitch/internal/errors"
)

// text previews a regular file as a numbered excerpt. Files above the
// byte budget and files that sniff as binary fall back to a size
// summary instead of being read in full.
func (d *Dispatcher) text(path string, size int64) Payload {
	if size > d.limits.MaxFileBytes {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}

	f, err := os.Open(path)
	if err != nil {
		return errorPayload(path, errors.FromListError(path, err))
	}
	defer f.Close()

	// Sniff the head of the file before treating it as text.
	head := make([]byte, 8192)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return errorPayload(path, errors.WrapKind(err, errors.IoFailure, "read file"))
	}
	if looksBinary(head[:n]) {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errorPayload(path, errors.WrapKind(err, errors.IoFailure, "rewind file"))
	}

	lines, truncated, err := readLines(f, d.limits.MaxLines)
	if err != nil {
		return errorPayload(path, errors.WrapKind(err, errors.IoFailure, "read file"))
	}

	return Payload{Kind: KindText, Path: path, Lines: numberLines(lines), Truncated: truncated}
}

// readLines reads up to max lines from r and reports whether more
// content remained.
func readLines(r io.Reader, max int) ([]string, bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lines := make([]string, 0, max)
	truncated := false
	for scanner.Scan() {
		if len(lines) == max {
			truncated = true
			break
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return lines, truncated, nil
}

// numberLines prefixes each line with a right-aligned 1-based number.
func numberLines(lines []string) []string {
	width := len(fmt.Sprintf("%d", len(lines)))
	if width < 3 {
		width = 3
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%*d  %s", width, i+1, line)
	}
	return out
}
