// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		status        TEXT NOT NULL DEFAULT 'active',
		points        INTEGER NOT NULL DEFAULT 0,
		reports_count INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_points
		ON users (points DESC, created_at ASC)`,

	// sessions.user_id carries the synthetic admin subject, so no FK.
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		revoked_at TIMESTAMPTZ,
		user_agent TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user
		ON sessions (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS reports (
		id          TEXT PRIMARY KEY,
		user_id     TEXT REFERENCES users (id) ON DELETE SET NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		image_url   TEXT,
		status      TEXT NOT NULL DEFAULT 'pending',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_user
		ON reports (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status
		ON reports (status)`,

	`CREATE TABLE IF NOT EXISTS points_history (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		amount     INTEGER NOT NULL,
		reason     TEXT NOT NULL,
		report_id  TEXT,
		game_id    TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_points_history_user
		ON points_history (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id                         INTEGER PRIMARY KEY,
		points_per_report          INTEGER NOT NULL DEFAULT 10,
		points_per_resolved_report INTEGER NOT NULL DEFAULT 20,
		max_reports_per_day        INTEGER NOT NULL DEFAULT 10,
		maintenance_mode           BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var defaultCategories = []struct {
	Name        string
	Description string
	Icon        string
}{
	{"Pothole", "Road potholes and damage", "road"},
	{"Streetlight", "Broken or non-functional streetlights", "lightbulb"},
	{"Garbage", "Garbage and waste management issues", "trash"},
	{"Road Damage", "General road damage and maintenance", "construction"},
	{"Water Issue", "Water supply and drainage issues", "droplet"},
	{"Other", "Other civic issues", "circle-help"},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	demo := flag.Bool("demo", false, "seed a demo citizen account")
	flag.Parse()

	if err := run(*configPath, *demo); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, demo bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	for _, stmt := range schema {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	slog.Info("schema applied")

	if err := seedCategories(ctx, db.DB); err != nil {
		return err
	}

	if err := seedSettings(ctx, db.DB); err != nil {
		return err
	}

	if demo {
		if err := seedDemoUser(ctx, db.DB); err != nil {
			return err
		}
	}

	slog.Info("seed complete")
	return nil
}

func seedCategories(ctx context.Context, db *sqlx.DB) error {
	query := `
		INSERT INTO categories (id, name, description, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	for _, c := range defaultCategories {
		if _, err := db.ExecContext(
			ctx,
			query,
			uuid.New().String(),
			c.Name,
			c.Description,
			c.Icon,
		); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	slog.Info("categories seeded", "count", len(defaultCategories))
	return nil
}

func seedSettings(ctx context.Context, db *sqlx.DB) error {
	query := `
		INSERT INTO settings (id)
		VALUES (1)
		ON CONFLICT (id) DO NOTHING`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return nil
}

func seedDemoUser(ctx context.Context, db *sqlx.DB) error {
	passwordHash, err := core.HashPassword("demo-password-123")
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	query := `
		INSERT INTO users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`

	if _, err := db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		"demo@smartcityfix.dev",
		passwordHash,
		"Demo Citizen",
	); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	slog.Info("demo citizen seeded", "email", "demo@smartcityfix.dev")
	return nil
}
