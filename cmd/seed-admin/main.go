package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	adminpostgres "github.com/inkwell-labs/bookstore-api/internal/domains/admin/adapters/persistence/postgres"
	adminapp "github.com/inkwell-labs/bookstore-api/internal/domains/admin/application"
	platformpostgres "github.com/inkwell-labs/bookstore-api/internal/platform/postgres"
)

// Seeds or rotates an admin account. Reseeding an existing username
// replaces its password hash.
func main() {
	username := flag.String("username", "admin", "admin account username")
	password := flag.String("password", "", "admin account password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("the -password flag is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.MaybeConnect(ctx, os.Getenv("BOOKSTORE_POSTGRES__DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("BOOKSTORE_POSTGRES__DSN not set or connection failed; cannot seed admin account")
	}

	service := adminapp.NewService(adminpostgres.NewRepository(db), "")
	user, err := service.Register(ctx, *username, *password)
	if err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	log.Printf("admin account %q ready (id %s)", user.Username, user.ID)
}
