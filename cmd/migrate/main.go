package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/postgres"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	if err := postgres.Migrate(os.Getenv("DATABASE_URL"), *direction); err != nil {
		if errors.Is(err, postgres.ErrNoChange) {
			log.Printf("migrate %s: no change", *direction)
			return
		}
		log.Fatalf("migrate %s: %v", *direction, err)
	}
	log.Printf("migrate %s: done", *direction)
}
