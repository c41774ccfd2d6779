package utils

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/facette/natsort"
)

// CSV rows sort naturally by their first column, so "plot_2" precedes "plot_10".
// Rows with equal first columns keep their order.
type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

func WriteAsCSV(w io.Writer, data CSV, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	sort.Stable(data)
	if err := cw.WriteAll(data); err != nil {
		return err
	}
	return cw.Error()
}

// SortNatural orders names the same way CSV rows are ordered.
func SortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return natsort.Compare(names[i], names[j])
	})
}
