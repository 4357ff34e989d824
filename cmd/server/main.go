package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/handler"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/mail"
	"github.com/MKhiriev/news-site/internal/server"
	"github.com/MKhiriev/news-site/internal/service"
	"github.com/MKhiriev/news-site/internal/store"
	"github.com/MKhiriev/news-site/internal/workers"
	"github.com/MKhiriev/news-site/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.NewLogger("news-site-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("news-site-server", cfg.Logging.Level)
	log.Debug().
		Bool("debug", cfg.Debug).
		Strs("installed_modules", cfg.InstalledModules).
		Strs("middleware", cfg.Middleware).
		Str("db_engine", cfg.Database.Engine).
		Str("email_backend", cfg.Email.Backend).
		Msg("received configs")

	var storages *store.Storages
	if cfg.HasModule(config.ModuleSessions) {
		db, err := store.NewDB(context.Background(), cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to database")
		}
		defer db.Close()

		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
		storages = store.NewStorages(db, log)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	mailer, err := mail.New(cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}
	notifier := mail.NewAdminNotifier(mailer, cfg.Email.ServerEmail, cfg.Admins)

	handlers, err := handler.NewHandlers(cfg, services, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
