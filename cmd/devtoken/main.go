// Command devtoken ensures the local developer account exists and prints an
// access token for it. It refuses to run against a prod environment.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/societyhub-backend/internal/identity"
	"github.com/angelmondragon/societyhub-backend/internal/users"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devtoken"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	token, err := identity.IssueDeveloperToken(ctx, users.NewRepository(dbClient.DB()), *cfg, time.Now().UTC())
	if err != nil {
		logg.Error(ctx, "failed to issue developer token", err)
		os.Exit(1)
	}

	ctx = logg.WithActor(ctx, token.UserID.String(), "developer")
	logg.Info(ctx, "developer token issued")
	if token.Created {
		fmt.Fprintf(os.Stderr, "created developer account %s\n", token.Email)
	}
	fmt.Println(token.AccessToken)
}
