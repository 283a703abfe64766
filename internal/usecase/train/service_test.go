package train

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
)

// --- Mocks ---

type mockPipeline struct {
	fitErr   error
	saveErr  error
	fitted   bool
	savedTo  string
	labelFor map[string]string
}

func (m *mockPipeline) Fit(docs, labels []string, _ classifier.Config) error {
	if m.fitErr != nil {
		return m.fitErr
	}
	m.fitted = true
	m.labelFor = make(map[string]string, len(docs))
	for i, doc := range docs {
		m.labelFor[doc] = labels[i]
	}
	return nil
}

func (m *mockPipeline) PredictLabel(doc string) (string, error) {
	if !m.fitted {
		return "", domain.ErrNotTrained
	}
	return m.labelFor[doc], nil
}

func (m *mockPipeline) Classes() []string { return []string{"politics", "sports"} }

func (m *mockPipeline) Save(path string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedTo = path
	return nil
}

func testDataset() Dataset {
	return Dataset{
		Docs:   []string{"match point", "ballot box"},
		Labels: []string{"sports", "politics"},
	}
}

// --- Tests ---

func TestTrain_FitsAndSaves(t *testing.T) {
	p := &mockPipeline{}
	svc := New(p, zap.NewNop())

	report, err := svc.Train(context.Background(), testDataset(), classifier.Config{}, "/tmp/out.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.fitted {
		t.Error("expected Fit to be called")
	}
	if p.savedTo != "/tmp/out.json" {
		t.Errorf("saved to %q, want /tmp/out.json", p.savedTo)
	}
	if report.Examples != 2 {
		t.Errorf("examples = %d, want 2", report.Examples)
	}
	if report.TrainingAccuracy != 1.0 {
		t.Errorf("accuracy = %f, want 1.0 (mock memorizes)", report.TrainingAccuracy)
	}
	if len(report.Labels) != 2 {
		t.Errorf("labels = %v, want 2 entries", report.Labels)
	}
}

func TestTrain_FitError(t *testing.T) {
	p := &mockPipeline{fitErr: domain.ErrEmptyTrainingSet}
	svc := New(p, zap.NewNop())

	_, err := svc.Train(context.Background(), Dataset{}, classifier.Config{}, "/tmp/out.json")
	if !errors.Is(err, domain.ErrEmptyTrainingSet) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}
	if p.savedTo != "" {
		t.Error("must not save after a failed fit")
	}
}

func TestTrain_SaveError(t *testing.T) {
	p := &mockPipeline{saveErr: errors.New("disk full")}
	svc := New(p, zap.NewNop())

	if _, err := svc.Train(context.Background(), testDataset(), classifier.Config{}, "/tmp/out.json"); err == nil {
		t.Fatal("expected save error to propagate")
	}
}

func TestTrain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &mockPipeline{}
	svc := New(p, zap.NewNop())

	_, err := svc.Train(ctx, testDataset(), classifier.Config{}, "/tmp/out.json")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if p.savedTo != "" {
		t.Error("must not save after cancellation")
	}
}

// --- Dataset loading ---

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDataset_WithHeader(t *testing.T) {
	path := writeDataset(t, "label,title,description\nsports,Team wins,A decisive victory\npolitics,Vote counted,Results are in\n")

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("len = %d, want 2", ds.Len())
	}
	if ds.Labels[0] != "sports" || ds.Labels[1] != "politics" {
		t.Errorf("labels = %v", ds.Labels)
	}
	if ds.Docs[0] != "Team wins A decisive victory" {
		t.Errorf("doc = %q", ds.Docs[0])
	}
}

func TestLoadDataset_WithoutHeader(t *testing.T) {
	path := writeDataset(t, "sports,Team wins,A decisive victory\n")

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("len = %d, want 1", ds.Len())
	}
}

func TestLoadDataset_EmptyDescription(t *testing.T) {
	path := writeDataset(t, "sports,Team wins,\n")

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Docs[0] != "Team wins" {
		t.Errorf("doc = %q, want title only", ds.Docs[0])
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDataset_WrongColumnCount(t *testing.T) {
	path := writeDataset(t, "sports,Team wins\n")

	if _, err := LoadDataset(path); err == nil {
		t.Fatal("expected error for wrong column count")
	}
}

func TestLoadDataset_EmptyLabel(t *testing.T) {
	path := writeDataset(t, ",Team wins,A victory\n")

	if _, err := LoadDataset(path); err == nil {
		t.Fatal("expected error for empty label")
	}
}

func TestLoadDataset_HeaderOnly(t *testing.T) {
	path := writeDataset(t, "label,title,description\n")

	_, err := LoadDataset(path)
	if !errors.Is(err, domain.ErrEmptyTrainingSet) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}
}
