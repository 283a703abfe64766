package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/config"
	dbRedis "github.com/DavidFitoussiSf/qconsf-mlops/internal/db/redis"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/embedding"
	logpkg "github.com/DavidFitoussiSf/qconsf-mlops/internal/logger"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/metrics"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/pipeline"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/repository/predcache"
	chiTransport "github.com/DavidFitoussiSf/qconsf-mlops/internal/transport/chi"
	healthuc "github.com/DavidFitoussiSf/qconsf-mlops/internal/usecase/health"
	predictuc "github.com/DavidFitoussiSf/qconsf-mlops/internal/usecase/predict"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting newsclassifier API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("word_vectors_path", cfg.Model.WordVectorsPath),
		zap.String("pipeline_path", cfg.Model.PipelinePath),
	)

	// The model is loaded fully before the listener opens; the service never
	// comes up without a servable pipeline.
	table, err := embedding.LoadTable(cfg.Model.WordVectorsPath, cfg.Model.Dimensions)
	if err != nil {
		logger.Fatal("Failed to load word-vector table", zap.Error(err))
	}
	logger.Info("Word-vector table loaded",
		zap.Int("vocabulary", table.Len()),
		zap.Int("dimensions", table.Dim()),
	)

	pipe, err := pipeline.Load(cfg.Model.PipelinePath, table)
	if err != nil {
		logger.Fatal("Failed to load pipeline", zap.Error(err))
	}
	logger.Info("Pipeline loaded", zap.Strings("labels", pipe.Classes()))

	// Register inference metrics explicitly (no init())
	metrics.RegisterInferenceMetrics()

	// Optional prediction cache
	var cachePinger healthuc.CachePinger
	predictSvc := predictuc.New(pipe, logger)
	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Addrs))

		cache := predcache.New(
			store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.PredictionCacheTotal,
			logger,
		)
		predictSvc = predictSvc.WithCache(cache)
		cachePinger = store
	}

	healthSvc := healthuc.New(pipe, cachePinger)

	server := chiTransport.NewServer(predictSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
