// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/workers"
)

const bannerFormat = "HTTP server is running at %s\n"

type Server struct {
	httpServer      *http.Server
	address         string
	shutdownTimeout time.Duration

	workers *workers.Workers

	// out receives the startup banner.
	out io.Writer

	logger *logger.Logger
}

// NewServer prepares an HTTP server for cfg. Nothing is bound until Run.
// workers may be nil.
func NewServer(cfg *app.Config, serverCfg config.Server, workers *workers.Workers, logger *logger.Logger) *Server {
	logger.Info().Msg("creating new server...")

	return &Server{
		httpServer: &http.Server{
			Handler:           cfg.Handler(),
			ReadHeaderTimeout: serverCfg.RequestTimeout,
			ReadTimeout:       serverCfg.RequestTimeout,
			WriteTimeout:      serverCfg.RequestTimeout,
			IdleTimeout:       2 * serverCfg.RequestTimeout,
			ErrorLog:          stdlog.New(logger, "", 0),
		},
		address:         serverCfg.HTTPAddress,
		shutdownTimeout: serverCfg.ShutdownTimeout,
		workers:         workers,
		out:             os.Stdout,
		logger:          logger,
	}
}

// Run binds the address, prints the banner and serves until ctx is done or
// a termination signal arrives. A bind failure is returned before anything
// is served.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrListen, s.address, err)
	}

	fmt.Fprintf(s.out, bannerFormat, bannerAddress(ln.Addr()))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("launching HTTP server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%w: %w", ErrShutdown, err)
		}
		s.logger.Info().Msg("server shutdown gracefully")
		return nil
	})

	if s.workers != nil {
		g.Go(func() error {
			return s.workers.Run(gctx)
		})
	}

	return g.Wait()
}

// bannerAddress renders addr as host:port, reporting wildcard binds as
// localhost.
func bannerAddress(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
