package extract

import (
	"io"
	"strings"
)

// Text passes plain text through, normalizing whitespace.
type Text struct{}

func (e *Text) Extract(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(collapseNewlines(string(raw))), nil
}
