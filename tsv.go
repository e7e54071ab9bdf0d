package gt

import (
	"encoding/csv"
	"io"
)

// ReadTSV reads tab-separated data whose first record is the header.
// Stray quotes inside fields are kept.
func ReadTSV(r io.Reader) (*Data, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	return readDelimited(cr)
}
