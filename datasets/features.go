package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadFeatureCSV loads a numeric feature table from a CSV file with a header
// row. Every column is parsed as float32; the returned matrix has one row per
// data row, columns in file order.
func ReadFeatureCSV(path string) ([][]float32, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open feature CSV %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]float32
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", rowIdx, err)
		}
		row := make([]float32, len(record))
		for i, field := range record {
			v, err := parseFloat32(field)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse %s row %d col %d: %w", path, rowIdx, i, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
		rowIdx++
	}
	return rows, header, nil
}

// ReadFeatureGlob loads every feature CSV matching the pattern and joins them
// column-wise into a single matrix. All files must have the same row count.
// Files are joined in lexical path order so the column layout is stable.
func ReadFeatureGlob(pattern string) ([][]float32, []string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no feature CSV files found matching pattern: %s", pattern)
	}
	sort.Strings(paths)

	var joined [][]float32
	var header []string
	for _, path := range paths {
		rows, cols, err := ReadFeatureCSV(path)
		if err != nil {
			return nil, nil, err
		}
		if joined == nil {
			joined = rows
			header = cols
			continue
		}
		if len(rows) != len(joined) {
			return nil, nil, fmt.Errorf("feature file %s has %d rows, expected %d", path, len(rows), len(joined))
		}
		for i := range joined {
			joined[i] = append(joined[i], rows[i]...)
		}
		header = append(header, cols...)
	}
	return joined, header, nil
}

// WriteFeatureCSV writes a numeric table to a CSV file with the given header.
func WriteFeatureCSV(path string, header []string, rows [][]float32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create feature CSV %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(header))
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d columns, header has %d", i, len(row), len(header))
		}
		for j, v := range row {
			record[j] = formatFloat32(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
