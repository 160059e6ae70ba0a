// Package ingest loads feature abundance tables and DAA results tables
// from delimited files, sniffing the delimiter and resolving columns by
// name rather than position.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rshade/pathscribe/internal/annotate"
)

// Ingest errors.
var (
	ErrEmptyTable       = errors.New("table has no data rows")
	ErrMissingFeature   = errors.New("no feature id column found")
	ErrMissingPAdjust   = errors.New("no p_adjust column found")
	ErrInconsistentRow  = errors.New("row has a different column count than the header")
	ErrNonNumericSample = errors.New("sample column contains a non-numeric value")
)

// Header names accepted for the feature id column, matched
// case-insensitively. "#OTU ID" is the PICRUSt2 export convention.
var featureColumnNames = []string{"#otu id", "feature", "function", "pathway", "id"}

// FeatureTable is a loaded feature abundance table: one row per feature
// id plus the ordered sample column names.
type FeatureTable struct {
	SampleNames []string
	Rows        []annotate.FeatureRow
}

// LoadFeatureTable reads a feature abundance table. The first column
// holds feature ids; every remaining column must be numeric and is kept
// in file order.
func LoadFeatureTable(path string) (*FeatureTable, error) {
	header, records, err := readDelimited(path)
	if err != nil {
		return nil, err
	}
	if len(header) < 1 || !isFeatureColumn(header[0]) {
		return nil, fmt.Errorf("%w: first column is %q", ErrMissingFeature, first(header))
	}

	table := &FeatureTable{
		SampleNames: append([]string(nil), header[1:]...),
		Rows:        make([]annotate.FeatureRow, 0, len(records)),
	}

	for i, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d",
				ErrInconsistentRow, i+1, len(record), len(header))
		}

		samples := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			v, parseErr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %q",
					ErrNonNumericSample, i+1, header[j+1], cell)
			}
			samples[j] = v
		}

		table.Rows = append(table.Rows, annotate.FeatureRow{
			Feature: strings.TrimSpace(record[0]),
			Samples: samples,
		})
	}

	return table, nil
}

// LoadDaaResults reads a DAA results table. Columns are resolved by
// name: "feature" and "p_adjust" are required, "description" is carried
// through when present, and anything else is ignored. SourceIndex
// records each row's position for merge-back after filtering.
func LoadDaaResults(path string) ([]annotate.DaaResult, error) {
	header, records, err := readDelimited(path)
	if err != nil {
		return nil, err
	}

	featureCol := findColumn(header, "feature")
	if featureCol < 0 {
		return nil, ErrMissingFeature
	}
	pAdjustCol := findColumn(header, "p_adjust")
	if pAdjustCol < 0 {
		return nil, ErrMissingPAdjust
	}
	descCol := findColumn(header, "description")

	rows := make([]annotate.DaaResult, 0, len(records))
	for i, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d",
				ErrInconsistentRow, i+1, len(record), len(header))
		}

		p, parseErr := strconv.ParseFloat(strings.TrimSpace(record[pAdjustCol]), 64)
		if parseErr != nil {
			return nil, fmt.Errorf("row %d: parsing p_adjust %q: %w", i+1, record[pAdjustCol], parseErr)
		}

		row := annotate.DaaResult{
			Feature:     strings.TrimSpace(record[featureCol]),
			PAdjust:     p,
			SourceIndex: i,
		}
		if descCol >= 0 {
			if desc := strings.TrimSpace(record[descCol]); desc != "" && !isNA(desc) {
				row.Description = &desc
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readDelimited reads a delimited file into a header and data records.
func readDelimited(path string) (header []string, records [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening table: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Sniff the delimiter before handing the file to encoding/csv.
	delim, err := sniffDelimiter(f, path)
	if err != nil {
		return nil, nil, err
	}
	if _, err = f.Seek(0, 0); err != nil {
		return nil, nil, fmt.Errorf("rewinding table: %w", err)
	}

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", filepath.Base(path), err)
	}
	if len(all) < 2 {
		return nil, nil, ErrEmptyTable
	}

	return all[0], all[1:], nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func isFeatureColumn(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, candidate := range featureColumnNames {
		if name == candidate {
			return true
		}
	}
	return false
}

func isNA(s string) bool {
	return strings.EqualFold(s, "na") || strings.EqualFold(s, "nan")
}

func first(header []string) string {
	if len(header) == 0 {
		return ""
	}
	return header[0]
}
