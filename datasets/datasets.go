// Package datasets bundles small example datasets for building tables.
package datasets

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/bjaus/gt"
)

//go:embed exibble.csv
var exibbleCSV []byte

// Exibble returns an 8-row dataset with one column of each common kind:
// num, char, fctr, date, time, datetime, currency, row and group. Most
// columns hold a missing value somewhere.
func Exibble() *gt.Data {
	d, err := gt.ReadCSV(bytes.NewReader(exibbleCSV))
	if err != nil {
		panic(fmt.Sprintf("datasets: exibble: %v", err))
	}
	return d
}
