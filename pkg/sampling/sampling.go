// Package sampling rebalances and splits labeled CSV datasets such as the
// ones written by cmd/dataset_creator.
package sampling

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// RandomSource is satisfied by *rand.Rand.
type RandomSource interface {
	Intn(n int) int
}

// Table
// A CSV file held in memory: the header row and every record after it.
type Table struct {
	Header  []string
	Records [][]string
}

func ReadTable(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("sampling: missing header row")
	}
	return &Table{Header: records[0], Records: records[1:]}, nil
}

// WriteTo writes the header and records with CRLF line endings.
func (table *Table) WriteTo(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.UseCRLF = true
	if err := csvWriter.Write(table.Header); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(table.Records); err != nil {
		return err
	}
	return csvWriter.Error()
}

// Column returns the index of the named column.
func (table *Table) Column(name string) (int, error) {
	for idx, column := range table.Header {
		if column == name {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("sampling: no column %q in header %v", name,
		table.Header)
}

func (table *Table) derive(records [][]string) *Table {
	return &Table{Header: table.Header, Records: records}
}

// GroupBy
// Partitions records by the value in column, returning the distinct values
// in the order they were first seen.
func (table *Table) GroupBy(column string) ([]string, map[string][][]string,
	error) {
	colIdx, err := table.Column(column)
	if err != nil {
		return nil, nil, err
	}
	order := make([]string, 0)
	groups := make(map[string][][]string)
	for lineIdx, record := range table.Records {
		if colIdx >= len(record) {
			return nil, nil, fmt.Errorf("sampling: record %d has no %q "+
				"column", lineIdx+1, column)
		}
		value := record[colIdx]
		if _, ok := groups[value]; !ok {
			order = append(order, value)
		}
		groups[value] = append(groups[value], record)
	}
	return order, groups, nil
}

// Shuffle permutes records in place.
func Shuffle(records [][]string, rng RandomSource) {
	for i := len(records) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		records[i], records[j] = records[j], records[i]
	}
}

func shuffled(records [][]string, rng RandomSource) [][]string {
	out := make([][]string, len(records))
	copy(out, records)
	Shuffle(out, rng)
	return out
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}
