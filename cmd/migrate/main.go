package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"wayfarer/database"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	conn, err := pgx.Connect(context.Background(), databaseURL)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close(context.Background())

	migrations, err := database.Migrations()
	if err != nil {
		log.Fatal("Failed to read migrations:", err)
	}

	for _, m := range migrations {
		log.Printf("Running migration: %s", m.Name)

		if _, err := conn.Exec(context.Background(), m.SQL); err != nil {
			log.Fatalf("Failed to execute %s: %v", m.Name, err)
		}

		log.Printf("✓ %s", m.Name)
	}

	fmt.Println("\nAll migrations completed!")
}
