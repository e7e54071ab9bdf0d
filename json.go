package gt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ReadJSON reads an array of flat JSON objects. Columns appear in the order
// their keys are first seen; a key absent from an object is a missing value.
func ReadJSON(r io.Reader) (*Data, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var rs jsonRecords
	for dec.More() {
		if err := rs.decode(dec); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(rs.rows), err)
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: trailing data after array: %v", ErrInvalidArgument, err)
		}
		return nil, fmt.Errorf("%w: trailing %v after array", ErrInvalidArgument, tok)
	}
	return rs.data()
}

type jsonRecords struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// decode reads one object, keeping key order.
func (rs *jsonRecords) decode(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	if rs.index == nil {
		rs.index = map[string]int{}
	}
	row := make([]any, len(rs.columns))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		v, err := jsonValue(raw)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		i, ok := rs.index[key]
		if !ok {
			i = len(rs.columns)
			rs.index[key] = i
			rs.columns = append(rs.columns, key)
			row = append(row, nil)
		}
		row[i] = v
	}
	rs.rows = append(rs.rows, row)
	return expectDelim(dec, '}')
}

func (rs *jsonRecords) data() (*Data, error) {
	for i, row := range rs.rows {
		if len(row) < len(rs.columns) {
			rs.rows[i] = append(row, make([]any, len(rs.columns)-len(row))...)
		}
	}
	return NewData(rs.columns, rs.rows)
}

func jsonValue(raw any) (any, error) {
	switch x := raw.(type) {
	case nil, string, bool:
		return x, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrInvalidArgument, x)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: nested %T values are not supported", ErrInvalidArgument, raw)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected end of JSON, want %q", ErrInvalidArgument, want)
		}
		return fmt.Errorf("read json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: got %v, want %q", ErrInvalidArgument, tok, want)
	}
	return nil
}
