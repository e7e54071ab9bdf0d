package gt

import (
	"fmt"
	"strconv"
)

// PreviewOptions configures [Preview]. Zero counts select the defaults.
type PreviewOptions struct {
	// TopN is the number of leading rows shown; default 5.
	TopN int
	// BottomN is the number of trailing rows shown; default 1.
	BottomN int
	// NoRowNums hides the stub of original row numbers.
	NoRowNums bool
}

// Preview returns a table showing the first and last rows of data. When rows
// are omitted, an ellipsis row separates the two parts. With row numbers the
// stub shows each row's original 1-based position.
func Preview(data *Data, opts PreviewOptions) (*Table, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	if opts.TopN < 0 || opts.BottomN < 0 {
		return nil, fmt.Errorf("%w: negative preview row count", ErrInvalidArgument)
	}
	if opts.TopN == 0 {
		opts.TopN = 5
	}
	if opts.BottomN == 0 {
		opts.BottomN = 1
	}

	n := data.Len()
	var rows []int
	ellipsisAt := -1
	if opts.TopN+opts.BottomN >= n {
		for i := range n {
			rows = append(rows, i)
		}
	} else {
		for i := range opts.TopN {
			rows = append(rows, i)
		}
		ellipsisAt = opts.TopN
		for i := n - opts.BottomN; i < n; i++ {
			rows = append(rows, i)
		}
	}

	t, err := New(data.subset(rows))
	if err != nil {
		return nil, err
	}
	t.ellipsisAt = ellipsisAt
	if !opts.NoRowNums {
		t.stubLabels = make([]string, len(rows))
		for i, r := range rows {
			t.stubLabels[i] = strconv.Itoa(r + 1)
		}
	}
	return t, nil
}
