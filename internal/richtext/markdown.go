package richtext

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// FromMarkdown converts a markdown body to sanitized HTML. Raw HTML in the
// source is omitted by the converter and never reaches the output.
func FromMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return Sanitize(buf.String()), nil
}
