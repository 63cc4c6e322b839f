// seed inserts the demo business into Postgres for local testing. Run after cmd/migrate.
// Idempotent: rows that already exist are skipped. When JWT_PRIVATE_KEY is set it also prints a
// dev access token for the demo owner.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"bookingdesk/backend/internal/config"
	"bookingdesk/backend/internal/db"
	"bookingdesk/backend/internal/logger"
	"bookingdesk/backend/internal/security"
	"bookingdesk/backend/internal/source/fixture"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db", zap.Error(err))
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := fixture.Demo(time.Now()).Seed(ctx, conn)
		if err != nil {
			log.Fatal("seed", zap.Error(err))
		}
		log.Info("seed completed", zap.Int("inserted", n), zap.String("org_id", fixture.DemoOrgID))
	} else {
		log.Info("DATABASE_URL is not set; skipping database seed")
	}

	if cfg.JWTPrivateKey == "" {
		log.Info("JWT_PRIVATE_KEY is not set; no dev token issued")
		return
	}
	tokens, err := security.NewTokenProviderFromPEM(cfg.JWTPrivateKey, cfg.JWTPublicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	if err != nil {
		log.Fatal("jwt", zap.Error(err))
	}
	token, expiresAt, err := tokens.IssueAccess("dev-session", fixture.UserID("owner"), fixture.DemoOrgID)
	if err != nil {
		log.Fatal("issue dev token", zap.Error(err))
	}
	fmt.Printf("Dev owner access token (expires %s):\n%s\n", expiresAt.Format(time.RFC3339), token)
}
