package scanning

import "io"

// Scanner reads the tags emitted by a barcode scanner
type Scanner interface {
	// ScanTags reads every tag from r
	ScanTags(r io.Reader) ([]string, error)
}
