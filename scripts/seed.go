package main

import (
	"context"
	"log"
	"os"

	"github.com/lib/pq"

	"github.com/resqlink/dispatch/internal/infrastructure/clients/postgres"
	"github.com/resqlink/dispatch/pkg/config"
)

type facilityRow struct {
	ID          string
	Name        string
	DistanceKm  float64
	EtaMinutes  float64
	Specialties []string
	Capacity    int
	Occupied    int
}

// The stock metro-area directory, matching the static fallback adapter.
var directory = []facilityRow{
	{"h1", "Central City Medical Center", 4.2, 12, []string{"Trauma L1", "Cardiology", "Neurology"}, 400, 85},
	{"h2", "St. Mary's Emergency", 8.5, 18, []string{"Pediatrics", "General Surgery"}, 250, 45},
	{"h3", "Westside Heart Institute", 12.1, 24, []string{"Cardiology", "Vascular"}, 150, 60},
	{"h4", "General City Hospital", 2.5, 8, []string{"General Medicine", "Orthopedics"}, 300, 92},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Host == "" {
		log.Fatal("DB_HOST is not set; nothing to seed")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS facilities (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			distance_km DOUBLE PRECISION NOT NULL,
			eta_minutes DOUBLE PRECISION NOT NULL,
			specialties TEXT[] NOT NULL DEFAULT '{}',
			capacity    INTEGER NOT NULL DEFAULT 0,
			occupied    INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		log.Fatalf("Failed to create facilities table: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating facilities before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE facilities`); err != nil {
			log.Fatalf("Failed to truncate facilities: %v", err)
		}
	}

	for _, f := range directory {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO facilities (id, name, distance_km, eta_minutes, specialties, capacity, occupied)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				distance_km = EXCLUDED.distance_km,
				eta_minutes = EXCLUDED.eta_minutes,
				specialties = EXCLUDED.specialties,
				capacity = EXCLUDED.capacity,
				occupied = EXCLUDED.occupied
		`, f.ID, f.Name, f.DistanceKm, f.EtaMinutes, pq.Array(f.Specialties), f.Capacity, f.Occupied)
		if err != nil {
			log.Fatalf("Failed to seed facility %s: %v", f.ID, err)
		}
		log.Printf("Seeded facility %s (%s)", f.ID, f.Name)
	}

	log.Printf("Seed complete: %d facilities", len(directory))
}
