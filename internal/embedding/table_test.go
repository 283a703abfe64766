package embedding

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVectorsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write vectors file: %v", err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeVectorsFile(t, "the 0.1 0.2 0.3\ngame -0.5 0.0 1.5\n")

	table, err := LoadTable(path, 3)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	if table.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", table.Dim())
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	vec, ok := table.Vector("game")
	if !ok {
		t.Fatal("expected 'game' in vocabulary")
	}
	if vec[0] != -0.5 || vec[1] != 0 || vec[2] != 1.5 {
		t.Errorf("unexpected vector for 'game': %v", vec)
	}

	if table.Contains("missing") {
		t.Error("'missing' should not be in vocabulary")
	}
}

func TestLoadTable_InfersDimension(t *testing.T) {
	path := writeVectorsFile(t, "a 1 2\nb 3 4\n")

	table, err := LoadTable(path, 0)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", table.Dim())
	}
}

func TestLoadTable_DimensionMismatch(t *testing.T) {
	path := writeVectorsFile(t, "a 1 2 3\nb 4 5\n")

	if _, err := LoadTable(path, 3); err == nil {
		t.Fatal("expected error for mismatched line dimension")
	}
}

func TestLoadTable_MalformedComponent(t *testing.T) {
	path := writeVectorsFile(t, "a 1.0 oops\n")

	if _, err := LoadTable(path, 2); err == nil {
		t.Fatal("expected error for non-numeric component")
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "nope.txt"), 3); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTable_EmptyFile(t *testing.T) {
	path := writeVectorsFile(t, "")

	if _, err := LoadTable(path, 3); err == nil {
		t.Fatal("expected error for empty file")
	}
}
