package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "svw.info/cleanbot/internal/adapters/http"
	"svw.info/cleanbot/internal/config"
	"svw.info/cleanbot/internal/generator"
	"svw.info/cleanbot/internal/infrastructure/storage"
	"svw.info/cleanbot/internal/metrics"
	"svw.info/cleanbot/internal/search"
	"svw.info/cleanbot/internal/usecase"
	"svw.info/cleanbot/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", humanize.Bytes(uint64(sw.bytes)),
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

// newMux wires planners → use cases → HTTP adapter, plus /metrics.
func newMux(cfg config.Config, reg *prometheus.Registry) *http.ServeMux {
	col := metrics.NewCollectors(reg)
	planners := search.All()
	for alg, p := range planners {
		planners[alg] = col.Instrument(p, alg)
	}
	uc := usecase.NewService(planners, generator.NewRandom(), validator.New(), storage.NewFS(cfg.PersistPath))

	mux := http.NewServeMux()
	httpadapter.New(uc, cfg.SearchTimeout).Register(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address (default from config)")
	persist := flag.String("persist-path", "", "plan archive directory (default from config)")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *persist != "" {
		cfg.PersistPath = *persist
	}
	if *levelStr != "" {
		cfg.LogLevel = *levelStr
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.Level(cfg.LogLevel)}))
	_ = os.MkdirAll(cfg.PersistPath, 0o755)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           requestLogger(logger, newMux(cfg, reg)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Addr, "persist", cfg.PersistPath, "searchTimeout", cfg.SearchTimeout)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
