package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/go_range_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_range_normalizer/internal/config"
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
	"github.com/baditaflorin/go_range_normalizer/internal/warmup"
	"github.com/valyala/fasthttp"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	logFile := flag.String("log-file", "", "Log file path (overrides log.file, empty = stdout)")
	warmUp := flag.Bool("warm-up", true, "Exercise every normalizer once on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	log, err := createLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting normalizer HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"normalizers", len(cfg.Normalizers),
		"strict", cfg.Strict,
	)

	srv, err := newServer(cfg, log)
	if err != nil {
		log.Error("Failed to initialize normalizers", "error", err)
		log.Close()
		os.Exit(1)
	}

	if *warmUp {
		srv.warmUp(context.Background(), warmup.DefaultWarmupConfig())
	}

	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// createLogger creates and configures a logger. When cfg.File is set the
// returned logger owns the file and closes it on Close.
func createLogger(cfg config.LogConfig) (ports.Logger, error) {
	var (
		output io.Writer = os.Stdout
		file   *os.File
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		output = f
	}

	// l closes an io.Closer output when it shuts down; stdout must stay open
	// and the file is closed below, after the logger has flushed.
	log, err := logger.NewCustomStdLogger(logger.Options{
		Output:     struct{ io.Writer }{output},
		JSONFormat: cfg.JSON,
		AsyncWrite: true,
	}.Config())
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if file == nil {
		return log, nil
	}
	return &fileLogger{Logger: log, file: file}, nil
}

// fileLogger is a logger writing into a file it owns.
type fileLogger struct {
	ports.Logger
	file *os.File
}

// Close flushes the logger, then closes the file.
func (f *fileLogger) Close() error {
	if err := f.Logger.Close(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}
