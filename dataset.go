package natural_dyck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header is the column layout consumed by the classifier's dataset loader.
var Header = []string{
	"modified_sentence",
	"modified_sentence_with_symbols",
	"dyck_format",
	"index",
	"label",
}

const noIndex = "None"

// Row
// One dataset row. Rows are fully rendered when built and are not modified
// afterwards.
type Row struct {
	ModifiedSentence            string
	ModifiedSentenceWithSymbols string
	DyckFormat                  string
	Index                       *SwapIndex
	Label                       bool
}

// Record returns the row as CSV fields in Header order.
func (row Row) Record() []string {
	index := noIndex
	if row.Index != nil {
		index = row.Index.String()
	}
	label := "False"
	if row.Label {
		label = "True"
	}
	return []string{
		row.ModifiedSentence,
		row.ModifiedSentenceWithSymbols,
		row.DyckFormat,
		index,
		label,
	}
}

func newRow(instance *NaturalInstance, dyck string, index *SwapIndex,
	label bool) (Row, error) {
	sentence, err := ToStr(instance.Sentences)
	if err != nil {
		return Row{}, err
	}
	withSymbols, err := ToStr(instance.Annotated)
	if err != nil {
		return Row{}, err
	}
	return Row{
		ModifiedSentence:            sentence,
		ModifiedSentenceWithSymbols: withSymbols,
		DyckFormat:                  dyck,
		Index:                       index,
		Label:                       label,
	}, nil
}

// BuildRows
// Turns one Dyck-2 line into its positive row, followed by a negative row
// when a close-peanut/close-chocolate swap is possible.
func BuildRows(line string, rng RandomSource) ([]Row, error) {
	dyck := strings.TrimSpace(line)
	instance, err := ConvertDyck2(dyck)
	if err != nil {
		return nil, err
	}
	positive, err := newRow(instance, dyck, nil, true)
	if err != nil {
		return nil, err
	}
	rows := []Row{positive}

	swapped, index, label := instance.SwapFalseInstance(rng)
	if label {
		return rows, nil
	}
	negative, err := newRow(swapped, dyck, index, label)
	if err != nil {
		return nil, err
	}
	return append(rows, negative), nil
}

// LinesIterator
// Yields input lines in order, returning io.EOF once exhausted.
type LinesIterator func() (string, error)

// SliceLines wraps an in-memory slice of lines as a LinesIterator.
func SliceLines(lines []string) LinesIterator {
	idx := 0
	return func() (string, error) {
		if idx >= len(lines) {
			return "", io.EOF
		}
		idx++
		return lines[idx-1], nil
	}
}

// LineError
// Wraps a failure with the 1-based number of the input line it came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Summary counts what CreateDataset produced.
type Summary struct {
	Lines     int
	Positives int
	Negatives int
}

// Rows is the total number of rows emitted.
func (s Summary) Rows() int {
	return s.Positives + s.Negatives
}

// CreateDataset
// Consumes lines from nextLine and passes every row to emit, preserving
// input order. The first failing line stops the run; rows emitted before it
// are left as they are.
func CreateDataset(nextLine LinesIterator, emit func(Row) error,
	rng RandomSource) (Summary, error) {
	var summary Summary
	for {
		line, readErr := nextLine()
		if errors.Is(readErr, io.EOF) {
			return summary, nil
		} else if readErr != nil {
			return summary, readErr
		}
		summary.Lines++
		rows, buildErr := BuildRows(line, rng)
		if buildErr != nil {
			return summary, &LineError{Line: summary.Lines, Err: buildErr}
		}
		for _, row := range rows {
			if emitErr := emit(row); emitErr != nil {
				return summary, emitErr
			}
			if row.Label {
				summary.Positives++
			} else {
				summary.Negatives++
			}
		}
	}
}

// DatasetWriter
// Writes rows as CSV with the dataset header. Records end in CRLF, matching
// the datasets produced by Python's csv module.
type DatasetWriter struct {
	writer        *csv.Writer
	headerWritten bool
}

func NewDatasetWriter(w io.Writer) *DatasetWriter {
	csvWriter := csv.NewWriter(w)
	csvWriter.UseCRLF = true
	return &DatasetWriter{writer: csvWriter}
}

// WriteHeader writes the header row; Write calls it if it has not run yet.
func (dw *DatasetWriter) WriteHeader() error {
	if dw.headerWritten {
		return nil
	}
	dw.headerWritten = true
	return dw.writer.Write(Header)
}

func (dw *DatasetWriter) Write(row Row) error {
	if err := dw.WriteHeader(); err != nil {
		return err
	}
	return dw.writer.Write(row.Record())
}

// Flush writes any buffered rows and reports a pending write error.
func (dw *DatasetWriter) Flush() error {
	dw.writer.Flush()
	return dw.writer.Error()
}
