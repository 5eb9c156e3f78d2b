package main

import (
	"io"
	"log"
	"os"

	"github.com/tripnest/vacation-api/internal/config"
	"github.com/tripnest/vacation-api/internal/logging"
	"github.com/tripnest/vacation-api/internal/media"
	miniorepo "github.com/tripnest/vacation-api/internal/repository/minio"
	"github.com/tripnest/vacation-api/internal/repository/postgres"
	"github.com/tripnest/vacation-api/internal/service"
	transport "github.com/tripnest/vacation-api/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	vacationRepo := postgres.NewVacationRepo(db)
	followerRepo := postgres.NewFollowerRepo(db)

	store, err := newMediaStore(cfg)
	if err != nil {
		log.Fatalf("init media store: %v", err)
	}

	authService := service.NewAuthService(userRepo)
	vacationService := service.NewVacationService(vacationRepo, followerRepo, store)
	followerService := service.NewFollowerService(followerRepo)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authService)
	transport.RegisterVacations(e, vacationService)
	transport.RegisterFollowers(e, followerService)

	if cfg.MediaBackend != "minio" {
		e.Static(cfg.MediaPublicPath, cfg.MediaLocalDir)
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func newMediaStore(cfg config.Config) (media.Store, error) {
	if cfg.MediaBackend == "minio" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, err
		}
		return miniorepo.NewMediaStore(client, cfg.MinIOBucket, cfg.MinIOPublicURL, cfg.MediaMaxBytes), nil
	}
	return media.NewLocalStore(cfg.MediaStagingDir, cfg.MediaLocalDir, cfg.MediaPublicPath, cfg.MediaMaxBytes)
}
