package main

import (
	"context"
	"log"
	"os"

	"github.com/inkwell-labs/bookstore-api/internal/app/api"
)

func main() {
	ctx := context.Background()
	cfg, err := api.LoadConfig(configDir())
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("bookstore API exited: %v", err)
	}
}

func configDir() string {
	if dir := os.Getenv("BOOKSTORE_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "./configs"
}
