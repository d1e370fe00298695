package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// RawEssays holds the raw ASAP essay table: one essay per row with its essay
// set and resolved human score. It is the input to the tokenizer stage and
// the source of labels and group labels for the harness.
type RawEssays struct {
	// Essay is the raw essay text per row.
	Essay []string

	// EssaySet is the essay set (group label) per row.
	EssaySet []int

	// Score is the resolved domain-1 score per row.
	Score []float32
}

// Len returns the number of essays.
func (r *RawEssays) Len() int {
	return len(r.Essay)
}

// ReadRawEssays reads the raw essay CSV. The file must have columns
// "essay", "essay_set" and "domain1_score"; column order is discovered from
// the header and extra columns are ignored.
func ReadRawEssays(path string) (*RawEssays, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw essay CSV %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}

	required := []string{"essay", "essay_set", "domain1_score"}
	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("required column %q not found in %s", col, path)
		}
	}

	raw := &RawEssays{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		set, err := strconv.Atoi(strings.TrimSpace(record[colIndex["essay_set"]]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse essay_set at row %d: %w", row, err)
		}
		score, err := parseFloat32(record[colIndex["domain1_score"]])
		if err != nil {
			return nil, fmt.Errorf("failed to parse domain1_score at row %d: %w", row, err)
		}

		raw.Essay = append(raw.Essay, record[colIndex["essay"]])
		raw.EssaySet = append(raw.EssaySet, set)
		raw.Score = append(raw.Score, score)
		row++
	}
	if raw.Len() == 0 {
		return nil, fmt.Errorf("no essay rows found in %s", path)
	}
	return raw, nil
}

// Labeled builds a Dataset from a feature matrix and this table's scores and
// essay sets. The feature matrix must be index-aligned with the raw table
// (one feature row per essay, same order).
func (r *RawEssays) Labeled(x [][]float32) (*Dataset, error) {
	return New(x, r.Score, r.EssaySet)
}
