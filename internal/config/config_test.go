package config

import (
	"strings"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 0},
		Model: ModelConfig{WordVectorsPath: "data/glove.100d.txt", Dimensions: 100},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingWordVectorsPath(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Model: ModelConfig{Dimensions: 100},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing word vectors path")
	}
	if !strings.Contains(err.Error(), "word_vectors_path") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_NegativeL2(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Model:    ModelConfig{WordVectorsPath: "vectors.txt", Dimensions: 100},
		Training: TrainingConfig{L2: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative l2")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Model: ModelConfig{WordVectorsPath: "vectors.txt"},
	}

	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected read timeout default 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Model.Dimensions != 100 {
		t.Errorf("expected dimensions default 100, got %d", cfg.Model.Dimensions)
	}
	if cfg.Model.PipelinePath != "data/news_classifier.json" {
		t.Errorf("unexpected pipeline path default: %q", cfg.Model.PipelinePath)
	}
	if cfg.Training.Tolerance != 0.001 {
		t.Errorf("expected tolerance default 0.001, got %v", cfg.Training.Tolerance)
	}
	if cfg.Training.MaxEpochs != 500 {
		t.Errorf("expected max epochs default 500, got %d", cfg.Training.MaxEpochs)
	}
	if cfg.Cache.TTLSec != 3600 {
		t.Errorf("expected cache ttl default 3600, got %d", cfg.Cache.TTLSec)
	}
}

func TestApplyDefaults_DropsEmptyCacheAddrs(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Model: ModelConfig{WordVectorsPath: "vectors.txt"},
		Cache: CacheConfig{Addrs: []string{""}},
	}

	cfg.ApplyDefaults()

	if cfg.Cache.Enabled() {
		t.Error("empty-string addr must not enable the cache")
	}
}

func TestCacheConfig_Enabled(t *testing.T) {
	if (CacheConfig{}).Enabled() {
		t.Error("empty cache config should be disabled")
	}
	if !(CacheConfig{Addrs: []string{"localhost:6379"}}).Enabled() {
		t.Error("cache config with addrs should be enabled")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NEWSCLF_TEST_KEY", "secret")

	in := []byte("api_keys: [\"${NEWSCLF_TEST_KEY}\"]\nport: ${NEWSCLF_TEST_PORT:-8080}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "secret") {
		t.Errorf("expected env var substitution, got %q", out)
	}
	if !strings.Contains(out, "8080") {
		t.Errorf("expected default value substitution, got %q", out)
	}
}
