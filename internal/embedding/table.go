package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Table holds a pretrained word-vector table loaded from a GloVe-style text
// file: one token per line followed by its vector components, space-separated.
// The table is read-only after load and safe for concurrent lookups.
type Table struct {
	dim     int
	vectors map[string][]float32
}

// LoadTable reads a word-vector file. dim is the expected vector dimension;
// when dim <= 0 it is inferred from the first line. Any malformed line or
// dimension disagreement fails the whole load.
func LoadTable(path string, dim int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("word vectors: %w", err)
	}
	defer f.Close()

	vectors := make(map[string][]float32, 400000)

	scanner := bufio.NewScanner(f)
	// Lines for high-dimensional vectors exceed the default scanner buffer.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("word vectors: line %d: expected token and components, got %d fields", lineNo, len(fields))
		}

		token := fields[0]
		components := fields[1:]
		if dim <= 0 {
			dim = len(components)
		}
		if len(components) != dim {
			return nil, fmt.Errorf("word vectors: line %d: expected %d components, got %d", lineNo, dim, len(components))
		}

		vec := make([]float32, dim)
		for i, c := range components {
			v, err := strconv.ParseFloat(c, 32)
			if err != nil {
				return nil, fmt.Errorf("word vectors: line %d: component %d: %w", lineNo, i, err)
			}
			vec[i] = float32(v)
		}
		vectors[token] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("word vectors: read error: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("word vectors: file is empty: %s", path)
	}

	return &Table{dim: dim, vectors: vectors}, nil
}

// Vector returns the vector for the given token.
func (t *Table) Vector(token string) ([]float32, bool) {
	v, ok := t.vectors[token]
	return v, ok
}

// Contains reports whether the token is in the vocabulary.
func (t *Table) Contains(token string) bool {
	_, ok := t.vectors[token]
	return ok
}

// Dim returns the vector dimension.
func (t *Table) Dim() int { return t.dim }

// Len returns the vocabulary size.
func (t *Table) Len() int { return len(t.vectors) }
