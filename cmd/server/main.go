// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/internal/auth"
	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/docs"
	handler "github.com/MKhiriev/hello-auth/internal/handler/http"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/server"
	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/store"
	"github.com/MKhiriev/hello-auth/internal/workers"
	"github.com/MKhiriev/hello-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("hello-auth-server")
	if err := run(context.Background(), buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	services, err := service.NewServices(storages, buildInfo, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	provider := auth.NewChain(
		auth.NewTokenProvider(services.AuthService),
		auth.NewBreakerProvider(
			auth.NewSessionProvider(services.AuthService, cfg.Auth.CookieName, cfg.Auth.SecretKey),
			cfg.Auth.BreakerFailures,
			cfg.Auth.BreakerTimeout,
			log,
		),
	)

	builder := app.New().Install(
		handler.NewHandler(services, cfg.Auth, log),
		auth.NewAdapter(provider, log),
	)
	if !cfg.Docs.Disabled {
		builder.Install(docs.New(cfg.Docs, cfg.App.Name, buildInfo.BuildVersion(), cfg.Auth.CookieName, log))
	}

	appCfg, err := builder.Build()
	if err != nil {
		return fmt.Errorf("error building application: %w", err)
	}

	background := workers.NewWorkers(
		workers.NewSessionCleanup(services.AuthService, cfg.Workers.SessionCleanupInterval, log),
	)

	return server.NewServer(appCfg, cfg.Server, background, log).Run(ctx)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
