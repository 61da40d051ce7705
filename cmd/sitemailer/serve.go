package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/localcarpetfitter/sitemailer/internal/handler"
	"github.com/localcarpetfitter/sitemailer/internal/mailer"
	"github.com/localcarpetfitter/sitemailer/pkg/config"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/localcarpetfitter/sitemailer/pkg/health"
	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
	"github.com/localcarpetfitter/sitemailer/pkg/middleware"
	"github.com/localcarpetfitter/sitemailer/pkg/probe"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contact endpoint and operational HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m := metrics.Init()
	logger.Info("metrics initialized")

	transport, err := mailer.NewTransport(cfg, logger)
	if err != nil {
		return err
	}
	instrumented := mailer.NewInstrumented(transport, m)
	sender := mailer.NewSenderFromConfig(cfg, instrumented, logger)

	contactHandler := handler.NewHandler(sender, cfg.FallbackPhone, logger)
	contactHandler.SetMetrics(m)

	healthMgr := health.NewManager(logger)
	healthMgr.RegisterLivenessCheck("server", health.ServerChecker())

	// Transports that can be probed get a background probe; readiness reads
	// its cached result.
	var probeMgr *probe.Manager
	if checker, ok := mailer.AsChecker(instrumented); ok {
		probeMgr = probe.NewManager(sender.TransportName(), checker, m, logger, cfg.ProbeInterval)
		probeMgr.Start()
		healthMgr.RegisterReadinessCheck("mail_transport", health.ProbeChecker(
			sender.TransportName(),
			probeMgr,
			2*cfg.ProbeInterval,
		))
		logger.Info("transport probe started",
			zap.String("transport", sender.TransportName()),
			zap.Duration("probe_interval", cfg.ProbeInterval),
		)
	} else {
		healthMgr.RegisterReadinessCheck("mail_transport", health.UncheckedTransportChecker(sender.TransportName()))
	}

	logger.Info("health checks registered")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthMgr.LivenessHandler())
	mux.HandleFunc("/ready", healthMgr.ReadinessHandler())
	mux.HandleFunc("/version", versionHandler())

	for _, path := range []string{"/contact", "/send-email.php"} {
		mux.HandleFunc(path, contactChain(path, contactHandler.HandleContact, cfg, logger, m))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting sitemailer server",
			zap.String("version", version),
			zap.String("commit", commit),
			zap.String("build_time", buildTime),
			zap.String("port", cfg.Port),
			zap.String("transport", sender.TransportName()),
			zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed to start", zap.Error(err))
		}
		if probeMgr != nil {
			probeMgr.Stop()
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, initiating graceful shutdown")

	if probeMgr != nil {
		probeMgr.Stop()
		logger.Info("transport probe stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during graceful shutdown", zap.Error(err))
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}

// contactChain wraps the contact handler in the full middleware stack.
// Request IDs come first so every later layer can log them.
func contactChain(endpoint string, h http.HandlerFunc, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) http.HandlerFunc {
	return middleware.Chain(
		h,
		middleware.WithRequestID,
		middleware.WithSecurityHeaders,
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithCORS(cfg.CORSAllowedOrigins, m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithLogging(logger, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithTimeout(cfg.RequestTimeout, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithMetrics(endpoint, m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithRecovery(logger, m, next)
		},
	)
}
