package gt

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadJSONL reads newline-delimited JSON objects. Columns follow the same
// rules as [ReadJSON].
func ReadJSONL(r io.Reader) (*Data, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rs jsonRecords
	for dec.More() {
		if err := rs.decode(dec); err != nil {
			return nil, fmt.Errorf("line %d: %w", len(rs.rows)+1, err)
		}
	}
	return rs.data()
}
