package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// SaveDocs writes a list of tokenized documents to path as JSON.
func SaveDocs(path string, docs [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(docs); err != nil {
		return fmt.Errorf("failed to encode documents to %s: %w", path, err)
	}
	return nil
}

// LoadDocs reads a JSON list of tokenized documents from path.
func LoadDocs(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	var docs [][]string
	if err := json.NewDecoder(file).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents from %s: %w", path, err)
	}
	return docs, nil
}

// WriteEmbeddingCSV writes a token -> vector table to path. The first column
// is the token, the rest are vector components; rows are sorted by token so
// output is deterministic.
func WriteEmbeddingCSV(path string, vectors map[string][]float32, dim int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := make([]string, dim+1)
	header[0] = "token"
	for i := 0; i < dim; i++ {
		header[i+1] = "d" + strconv.Itoa(i)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	toks := make([]string, 0, len(vectors))
	for tok := range vectors {
		toks = append(toks, tok)
	}
	sort.Strings(toks)

	record := make([]string, dim+1)
	for _, tok := range toks {
		vec := vectors[tok]
		if len(vec) != dim {
			return fmt.Errorf("vector for %q has length %d, expected %d", tok, len(vec), dim)
		}
		record[0] = tok
		for i, v := range vec {
			record[i+1] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", tok, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadEmbeddingCSV reads a table written by WriteEmbeddingCSV, returning the
// token -> vector map and the vector length.
func ReadEmbeddingCSV(path string) (map[string][]float32, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	dim := len(header) - 1
	if dim < 1 {
		return nil, 0, fmt.Errorf("embedding table %s has no vector columns", path)
	}

	vectors := make(map[string][]float32)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read row %d: %w", row, err)
		}
		if len(record) != dim+1 {
			return nil, 0, fmt.Errorf("row %d has %d fields, expected %d", row, len(record), dim+1)
		}
		vec := make([]float32, dim)
		for i := 0; i < dim; i++ {
			v, err := strconv.ParseFloat(record[i+1], 32)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to parse row %d col %d: %w", row, i+1, err)
			}
			vec[i] = float32(v)
		}
		vectors[record[0]] = vec
		row++
	}
	return vectors, dim, nil
}
