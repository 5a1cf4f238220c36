// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsimd serves the logic circuit editor API.
//
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/db47h/logicsim/editor"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/internal/server"
	"github.com/db47h/logicsim/internal/tracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zc.Level, errors.Wrap(err, "log level")
	}
	zc.Level.SetLevel(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, zc.Level, errors.Wrap(err, "build logger")
	}
	return l, zc.Level, nil
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger, level, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfgPath != "" {
		w, err := config.NewWatcher(cfgPath, cfg, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		w.OnChange(func(c *config.Config) {
			lvl, err := zapcore.ParseLevel(c.LogLevel)
			if err != nil {
				return
			}
			if lvl != level.Level() {
				level.SetLevel(lvl)
				logger.Info("log level changed", zap.Stringer("level", lvl))
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(ctx, "logicsimd", cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			logger.Error("tracing shutdown", zap.Error(err))
		}
	}()

	m := metrics.NewCollector("logicsim")
	ws := editor.NewWorkspace(editor.Options{
		MaxNodes:       cfg.MaxNodes,
		MaxTruthInputs: cfg.MaxTruthInputs,
		Logger:         logger.Named("editor"),
		Metrics:        m,
		Tracer:         tp.Tracer("github.com/db47h/logicsim/editor"),
	})
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewRouter(server.Options{
			Workspace:   ws,
			Logger:      logger.Named("http"),
			Metrics:     m,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return errors.Wrap(srv.Shutdown(sctx), "shutdown")
}

func main() {
	cfgPath := flag.String("config", os.Getenv("LOGICSIM_CONFIG"), "path to a YAML configuration file")
	flag.Parse()
	if err := run(*cfgPath); err != nil {
		log.Fatalf("%+v", err)
	}
}
