// Command trainer fits the news classification pipeline on a labeled CSV
// dataset and writes the serialized pipeline for the serving process.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/config"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/embedding"
	logpkg "github.com/DavidFitoussiSf/qconsf-mlops/internal/logger"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/pipeline"
	trainuc "github.com/DavidFitoussiSf/qconsf-mlops/internal/usecase/train"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/version"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "", "path to the training CSV (label,title,description)")
		outPath     = flag.String("out", "", "output pipeline path (default: config model.pipeline_path)")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *datasetPath == "" {
		logger.Fatal("-dataset is required")
	}
	output := *outPath
	if output == "" {
		output = cfg.Model.PipelinePath
	}

	logger.Info("Starting trainer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("dataset", *datasetPath),
		zap.String("output", output),
	)

	table, err := embedding.LoadTable(cfg.Model.WordVectorsPath, cfg.Model.Dimensions)
	if err != nil {
		logger.Fatal("Failed to load word-vector table", zap.Error(err))
	}
	logger.Info("Word-vector table loaded",
		zap.Int("vocabulary", table.Len()),
		zap.Int("dimensions", table.Dim()),
	)

	ds, err := trainuc.LoadDataset(*datasetPath)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	trainCfg := classifier.Config{
		LearningRate: cfg.Training.LearningRate,
		Tolerance:    cfg.Training.Tolerance,
		MaxEpochs:    cfg.Training.MaxEpochs,
		L2:           cfg.Training.L2,
	}

	svc := trainuc.New(pipeline.New(table), logger)
	report, err := svc.Train(context.Background(), ds, trainCfg, output)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	logger.Info("Pipeline written",
		zap.String("path", output),
		zap.Float64("training_accuracy", report.TrainingAccuracy),
	)
}
