package main

import (
	"context"
	"net/url"
	"os"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/repository/implementation"
	"ai-notes-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	color.Cyan("Connecting to %s...", redact(cfg.Database.Connection))
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultPoolConfig())
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Running notes migration...")
	err = implementation.NewNoteRepository(db).Migrate(context.Background())
	_ = database.Close(db)
	if err != nil {
		color.Red("Error: migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("Success: notes table is up to date")
}

// redact hides the password portion of a postgres URL.
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	return u.Redacted()
}
