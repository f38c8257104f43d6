// Package main implements a CLI for importing deck Markdown files into the
// database, either one file at a time or a whole content directory.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/config"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/postgres"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
)

func main() {
	userFlag := flag.String("user", "", "owner of the imported decks: email address or user ID")
	fileFlag := flag.String("file", "", "deck Markdown file to import")
	dirFlag := flag.String("dir", "", "directory tree of deck Markdown files to import")
	flag.Parse()

	if err := run(*userFlag, *fileFlag, *dirFlag); err != nil {
		log.Fatalf("deckimport: %v", err)
	}
}

func run(user, file, dir string) error {
	if user == "" {
		return errors.New("-user is required")
	}
	if (file == "") == (dir == "") {
		return errors.New("exactly one of -file or -dir is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	userID, err := resolveUser(ctx, userStore, user)
	if err != nil {
		return err
	}

	deckService := deck.NewDeckService(
		db,
		postgres.NewPostgresDeckStore(db),
		postgres.NewPostgresCardStore(db, appLogger),
		postgres.NewPostgresUserCardStatsStore(db),
		appLogger,
	)

	if file != "" {
		return importOne(ctx, deckService, userID, file)
	}
	return importDir(ctx, deckService, userID, dir)
}

// resolveUser accepts either a user ID or an email address and returns the
// matching user's ID.
func resolveUser(ctx context.Context, userStore store.UserStore, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		u, err := userStore.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to look up user %q: %w", ref, err)
		}
		return u.ID, nil
	}

	u, err := userStore.GetByEmail(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up user %q: %w", ref, err)
	}
	return u.ID, nil
}

func importOne(ctx context.Context, svc deck.DeckService, userID uuid.UUID, path string) error {
	result, err := svc.ImportFile(ctx, userID, path)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	fmt.Printf("imported %s: deck %q with %d cards\n", path, result.Deck.Title, result.CardCount)
	return nil
}

// importDir walks the directory tree and imports every Markdown file.
// Files a user already imported are skipped rather than treated as
// failures, so the command can be rerun as new content lands.
func importDir(ctx context.Context, svc deck.DeckService, userID uuid.UUID, root string) error {
	var imported, skipped, failed int

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		result, err := svc.ImportFile(ctx, userID, path)
		switch {
		case errors.Is(err, deck.ErrDeckExists):
			skipped++
			return nil
		case err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "failed to import %s: %v\n", path, err)
			return nil
		default:
			imported++
			fmt.Printf("imported %s: deck %q with %d cards\n", path, result.Deck.Title, result.CardCount)
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	fmt.Printf("done: %d imported, %d skipped, %d failed\n", imported, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d files failed to import", failed)
	}
	return nil
}
