// cmd/api-server/main.go
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

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ai-gateway/internal/common/config"
	"ai-gateway/internal/common/logger"
	"ai-gateway/internal/common/observability"
	"ai-gateway/internal/gemini"
	"ai-gateway/internal/pipeline"

	ce "ai-gateway/internal/endpoints/code-explain"
	ca "ai-gateway/internal/endpoints/contract-analyze"
	ed "ai-gateway/internal/endpoints/email-draft"
	id "ai-gateway/internal/endpoints/idea-validate"
	im "ai-gateway/internal/endpoints/image-describe"
	qg "ai-gateway/internal/endpoints/quiz-generate"
	rs "ai-gateway/internal/endpoints/recipe-suggest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting AI gateway...",
		zap.String("version", cfg.App.Version),
		zap.String("model", cfg.Gemini.Model),
	)

	obs := observability.New("api-server")
	defer obs.Shutdown()

	generator := gemini.NewClient(cfg.Gemini, log)
	if !generator.Ready() {
		zapLog.Warn("No API key configured, AI endpoints will return 500",
			zap.Strings("checked", []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}),
		)
	}

	p := pipeline.New(generator, log, obs)

	r := mux.NewRouter()
	r.Use(pipeline.RequestID)
	r.Use(pipeline.AccessLog(log))

	api := r.PathPrefix("/api/ai").Subrouter()
	for _, ep := range []pipeline.Endpoint{
		qg.New(),
		id.New(cfg.Limits),
		rs.New(),
		ce.New(),
		ed.New(),
		im.New(),
		ca.New(cfg.Limits, nil),
	} {
		api.HandleFunc("/"+ep.Name, p.Handler(ep)).Methods(http.MethodPost)
	}

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Server shutdown failed", zap.Error(err))
	}

	zapLog.Info("AI gateway stopped gracefully")
}
