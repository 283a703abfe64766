package train

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
)

// Dataset is a labeled training set. Docs and Labels are parallel slices.
type Dataset struct {
	Docs   []string
	Labels []string
}

// Len returns the number of examples.
func (d Dataset) Len() int { return len(d.Docs) }

// LoadDataset reads a CSV file with rows "label,title,description". A header
// row whose first field is "label" is skipped. Title and description are
// joined the same way the prediction path joins them.
func LoadDataset(path string) (Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}

	var ds Dataset
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "label") {
			continue
		}
		label := strings.TrimSpace(rec[0])
		if label == "" {
			return Dataset{}, fmt.Errorf("dataset row %d: empty label", i+1)
		}
		article := domain.Article{Title: rec[1], Description: rec[2]}
		ds.Docs = append(ds.Docs, article.DocumentText())
		ds.Labels = append(ds.Labels, label)
	}

	if ds.Len() == 0 {
		return Dataset{}, domain.ErrEmptyTrainingSet
	}
	return ds, nil
}
