package embedding

import (
	"math"
	"testing"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	path := writeVectorsFile(t,
		"game 1 0 0\n"+
			"team -1 2 0\n"+
			"vote 0 0 4\n")
	table, err := LoadTable(path, 3)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	return table
}

func TestFeaturizer_AveragesMatchedTokens(t *testing.T) {
	f := NewFeaturizer(testTable(t))

	vec := f.TransformOne("Game team")
	want := []float32{0, 1, 0} // mean of (1,0,0) and (-1,2,0)
	for i := range want {
		if math.Abs(float64(vec[i]-want[i])) > 1e-6 {
			t.Errorf("vec[%d] = %f, want %f", i, vec[i], want[i])
		}
	}
}

func TestFeaturizer_IgnoresOutOfVocabularyTokens(t *testing.T) {
	f := NewFeaturizer(testTable(t))

	withNoise := f.TransformOne("game zzz unknownword")
	clean := f.TransformOne("game")
	for i := range clean {
		if withNoise[i] != clean[i] {
			t.Errorf("out-of-vocabulary tokens changed the vector at %d: %f != %f", i, withNoise[i], clean[i])
		}
	}
}

func TestFeaturizer_ZeroVectorFallback(t *testing.T) {
	f := NewFeaturizer(testTable(t))

	tests := []string{"", "completely unknown words", "12345 !!!"}
	for _, doc := range tests {
		vec := f.TransformOne(doc)
		if len(vec) != 3 {
			t.Fatalf("expected dimension 3, got %d", len(vec))
		}
		for i, v := range vec {
			if v != 0 {
				t.Errorf("doc %q: vec[%d] = %f, want 0", doc, i, v)
			}
		}
	}
}

func TestFeaturizer_OrderPreserving(t *testing.T) {
	f := NewFeaturizer(testTable(t))

	vecs := f.Transform([]string{"game", "vote"})
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if vecs[0][0] != 1 {
		t.Errorf("first vector should be 'game', got %v", vecs[0])
	}
	if vecs[1][2] != 4 {
		t.Errorf("second vector should be 'vote', got %v", vecs[1])
	}
}

func TestFeaturizer_OutputCountEqualsInputCount(t *testing.T) {
	f := NewFeaturizer(testTable(t))

	docs := []string{"game", "game", "", "vote team"}
	vecs := f.Transform(docs)
	if len(vecs) != len(docs) {
		t.Fatalf("expected %d vectors, got %d", len(docs), len(vecs))
	}
}
