// Package embedding turns raw text into fixed-length feature vectors by
// averaging pretrained word vectors over the document's in-vocabulary tokens.
package embedding

// Featurizer maps raw text documents to D-dimensional feature vectors.
// It is memoryless after construction: Transform mutates no internal state
// and is safe for concurrent use.
type Featurizer struct {
	table *Table
}

// NewFeaturizer creates a featurizer over a loaded word-vector table.
func NewFeaturizer(table *Table) *Featurizer {
	return &Featurizer{table: table}
}

// Dim returns the feature vector dimension.
func (f *Featurizer) Dim() int { return f.table.Dim() }

// Transform returns one feature vector per input document, in input order.
// Output count always equals input count.
func (f *Featurizer) Transform(docs []string) [][]float32 {
	out := make([][]float32, len(docs))
	for i, doc := range docs {
		out[i] = f.transform(doc)
	}
	return out
}

// TransformOne featurizes a single document.
func (f *Featurizer) TransformOne(doc string) []float32 {
	return f.transform(doc)
}

// transform averages the vectors of the document's in-vocabulary tokens.
// A document with no in-vocabulary tokens yields the all-zero vector.
func (f *Featurizer) transform(doc string) []float32 {
	dim := f.table.Dim()
	sum := make([]float64, dim)
	matched := 0

	for _, token := range Tokenize(doc) {
		vec, ok := f.table.Vector(token)
		if !ok {
			continue
		}
		for j, v := range vec {
			sum[j] += float64(v)
		}
		matched++
	}

	out := make([]float32, dim)
	if matched == 0 {
		return out
	}
	for j := range sum {
		out[j] = float32(sum[j] / float64(matched))
	}
	return out
}
