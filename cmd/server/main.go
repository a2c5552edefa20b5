package main

import (
	"context"
	"fmt"

	"github.com/lockboxd/lockbox/internal/config"
	"github.com/lockboxd/lockbox/internal/crypto"
	myHTTP "github.com/lockboxd/lockbox/internal/handler/http"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/server"
	"github.com/lockboxd/lockbox/internal/service"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("lockbox-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	masterKey, err := crypto.DeriveMasterKey(cfg.App.MasterKeySecret)
	if err != nil {
		log.Fatal().Err(err).Msg("error deriving master key")
	}

	cipher := crypto.NewCipherService()
	keyRing, err := crypto.NewKeyRing(masterKey, cipher)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating key ring")
	}
	codec := crypto.NewVaultCodec(cipher)

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repos := store.NewRepositories(db, log)
	services := service.NewServices(repos, keyRing, codec, cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
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
