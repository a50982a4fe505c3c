package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tasktube/internal/auth"
	"github.com/desertthunder/tasktube/internal/repositories"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var session *auth.Session
	if config.Credentials.Google.ClientSecretsPath != "" {
		if sess, err := auth.NewSessionFromSecrets(
			config.Credentials.Google.ClientSecretsPath,
			config.Credentials.Google.RedirectURI,
			logger,
		); err == nil {
			session = sess
		} else {
			logger.Debug("oauth client unavailable", "error", err)
		}
	}

	var mirror auth.Mirror
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			mirror = repositories.NewCredentialRepository(db)
		} else {
			logger.Debug("credential mirror unavailable", "error", err)
			db.Close()
		}
	}

	var conf *oauth2.Config
	if session != nil {
		conf = session.Config()
	}
	store := auth.NewStore(config.Storage.CredentialsPath, conf, mirror, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Session: session,
		Store:   store,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "tasktube",
		Usage:    "Browse the YouTube videos referenced by your Google Tasks",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
