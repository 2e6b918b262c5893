package scanning

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// LineScanner reads one tag per line. Input that looks like a JSON array
// (optionally inside a markdown code block) is parsed as a list of tags instead.
type LineScanner struct{}

// NewLineScanner creates a new LineScanner
func NewLineScanner() *LineScanner {
	return &LineScanner{}
}

// ScanTags implements Scanner
func (l *LineScanner) ScanTags(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "```") {
		return parseTagsJSON(trimmed)
	}

	tags := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tags = append(tags, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning tags: %w", err)
	}
	return tags, nil
}
