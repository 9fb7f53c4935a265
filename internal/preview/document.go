package preview

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"quickswitch/internal/errors"
)

// document extracts plain text from a PDF and presents it like a text
// excerpt. Extraction failures downgrade to a size summary; a scanned
// or encrypted PDF is still previewable as "binary, N bytes".
func (d *Dispatcher) document(path string, size int64) Payload {
	if size > d.limits.MaxFileBytes {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}

	lines, truncated, err := extractPDFLines(path, d.limits.MaxLines)
	if err != nil || len(lines) == 0 {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}

	return Payload{Kind: KindDocument, Path: path, Lines: numberLines(lines), Truncated: truncated}
}

func extractPDFLines(path string, max int) (lines []string, truncated bool, err error) {
	// The pdf package panics on some malformed files; treat that as a
	// plain extraction failure.
	defer func() {
		if r := recover(); r != nil {
			lines, truncated = nil, false
			err = errMalformedPDF
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")

		// Stop decoding pages once we have enough lines.
		if strings.Count(sb.String(), "\n") > max {
			break
		}
	}

	all := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(all) == 1 && all[0] == "" {
		return nil, false, nil
	}
	if len(all) > max {
		return all[:max], true, nil
	}
	return all, false, nil
}

var errMalformedPDF = errors.New("malformed pdf")
