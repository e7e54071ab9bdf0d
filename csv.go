package gt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads comma-separated data whose first record is the header.
// Column types are inferred; "NA" and empty fields are missing values.
func ReadCSV(r io.Reader) (*Data, error) {
	return readDelimited(csv.NewReader(r))
}

func readDelimited(cr *csv.Reader) (*Data, error) {
	records, err := cr.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%w: %v", ErrRaggedRow, err)
		}
		return nil, fmt.Errorf("read records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header record", ErrInvalidArgument)
	}
	return fromStrings(records[0], records[1:])
}

// writeCSV writes the rendered cells, not the raw data: formatting, merges
// and hidden columns apply. A leading group column is added when the table
// has labeled row groups.
func writeCSV(w io.Writer, l *layout) error {
	cw := csv.NewWriter(w)
	grouped := l.hasGroupLabels()

	var header []string
	if grouped {
		header = append(header, "group")
	}
	if l.hasStub {
		header = append(header, l.stubhead.toPlain())
	}
	for _, c := range l.columns {
		header = append(header, c.label.toPlain())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, g := range l.groups {
		for _, r := range g.rows {
			var rec []string
			if grouped {
				rec = append(rec, g.label.toPlain())
			}
			if l.hasStub {
				rec = append(rec, r.stub)
			}
			if err := cw.Write(append(rec, r.cells...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
