package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"journeys/internal/app"
	"journeys/internal/config"
	"journeys/internal/domain"
	internalRedis "journeys/internal/redis"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	car_number TEXT,
	car_model TEXT,
	car_image TEXT,
	price_per_day DOUBLE PRECISION NOT NULL DEFAULT 0,
	driving_license_url TEXT,
	license_verified BOOLEAN NOT NULL DEFAULT FALSE,
	languages TEXT[],
	experience TEXT,
	profile_image TEXT,
	guide_number TEXT,
	guide_id_card_url TEXT,
	id_card_verified BOOLEAN NOT NULL DEFAULT FALSE,
	total_earnings DOUBLE PRECISION NOT NULL DEFAULT 0,
	trips_completed INTEGER NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	reset_token TEXT,
	reset_expiry TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tourist_spots (
	spot_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	history TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	customer_email TEXT NOT NULL,
	driver_email TEXT NOT NULL,
	guide_email TEXT,
	from_city TEXT NOT NULL,
	to_city TEXT NOT NULL,
	trip_date TEXT NOT NULL,
	trip_time TEXT NOT NULL,
	passengers INTEGER NOT NULL DEFAULT 1,
	selected_spots TEXT[],
	total_cost DOUBLE PRECISION NOT NULL,
	payment_method TEXT NOT NULL,
	status TEXT NOT NULL,
	driver_pickup_location TEXT,
	guide_pickup_location TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);
CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings (customer_email);
CREATE INDEX IF NOT EXISTS idx_bookings_driver ON bookings (driver_email);
CREATE INDEX IF NOT EXISTS idx_bookings_guide ON bookings (guide_email);
CREATE INDEX IF NOT EXISTS idx_tourist_spots_city ON tourist_spots (city);
`

type seedSpot struct {
	spotID, name, city, description, history, image string
}

var spots = []seedSpot{
	{"charminar", "Charminar", "Hyderabad",
		"Iconic 16th-century mosque with four grand minarets at the heart of the old city.",
		"Built in 1591 by Muhammad Quli Qutb Shah to commemorate the end of a plague.",
		"/images/spots/charminar.jpg"},
	{"golconda-fort", "Golconda Fort", "Hyderabad",
		"Sprawling hilltop fortress famed for its acoustics and diamond vaults.",
		"Capital of the Qutb Shahi dynasty from 1518 to 1687.",
		"/images/spots/golconda.jpg"},
	{"birla-mandir", "Birla Mandir", "Hyderabad",
		"White marble temple overlooking Hussain Sagar lake.",
		"Completed in 1976, built entirely of Rajasthani white marble.",
		"/images/spots/birla-mandir.jpg"},
	{"rk-beach", "RK Beach", "Visakhapatnam",
		"Lively urban beach along the Bay of Bengal promenade.",
		"Named after the Ramakrishna Mission ashram located on the shore road.",
		"/images/spots/rk-beach.jpg"},
	{"kailasagiri", "Kailasagiri", "Visakhapatnam",
		"Hilltop park with a giant Shiva-Parvati statue and panoramic sea views.",
		"Developed in 1966 by the local tourism authority on twin hillocks.",
		"/images/spots/kailasagiri.jpg"},
	{"submarine-museum", "Submarine Museum", "Visakhapatnam",
		"INS Kursura, a decommissioned submarine turned walk-through museum.",
		"The submarine served the Indian Navy from 1969 to 2001.",
		"/images/spots/submarine-museum.jpg"},
	{"tirumala-temple", "Tirumala Temple", "Tirupati",
		"One of the most visited pilgrimage sites in the world.",
		"The hill shrine of Venkateswara dates back over a thousand years.",
		"/images/spots/tirumala.jpg"},
	{"talakona-waterfalls", "Talakona Waterfalls", "Tirupati",
		"Tallest waterfall in Andhra Pradesh inside a dense forest reserve.",
		"Part of the Sri Venkateswara National Park.",
		"/images/spots/talakona.jpg"},
	{"undavalli-caves", "Undavalli Caves", "Vijayawada",
		"Rock-cut cave temples carved from a single sandstone hill.",
		"Carved in the 4th to 5th centuries, associated with the Vishnukundina kings.",
		"/images/spots/undavalli.jpg"},
	{"kanaka-durga-temple", "Kanaka Durga Temple", "Vijayawada",
		"Hill temple of the goddess Durga overlooking the Krishna river.",
		"Mentioned in several Puranic texts; the self-manifested deity draws large festivals.",
		"/images/spots/kanaka-durga.jpg"},
}

type seedUser struct {
	name, email, phone  string
	role                domain.Role
	pricePerDay         float64
	carNumber, carModel string
	languages           []string
	experience          string
	guideNumber         string
}

var demoUsers = []seedUser{
	{name: "Ravi Kumar", email: "ravi.driver@journeys.local", phone: "9000000001",
		role: domain.RoleDriver, pricePerDay: 2500, carNumber: "AP39AB1234", carModel: "Toyota Innova"},
	{name: "Suresh Babu", email: "suresh.driver@journeys.local", phone: "9000000002",
		role: domain.RoleDriver, pricePerDay: 2000, carNumber: "TS09CD5678", carModel: "Maruti Ertiga"},
	{name: "Anita Rao", email: "anita.guide@journeys.local", phone: "9000000003",
		role: domain.RoleGuide, pricePerDay: 1500, languages: []string{"English", "Telugu", "Hindi"},
		experience: "8 years", guideNumber: "GD-1021"},
	{name: "Vikram Singh", email: "vikram.guide@journeys.local", phone: "9000000004",
		role: domain.RoleGuide, pricePerDay: 1200, languages: []string{"English", "Hindi"},
		experience: "5 years", guideNumber: "GD-1034"},
	{name: "Priya Sharma", email: "priya@journeys.local", phone: "9000000005",
		role: domain.RoleCustomer},
}

func main() {
	destroy := flag.Bool("d", false, "drop all data before seeding")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if *destroy {
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS bookings, tourist_spots, users`); err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
		log.Println("Dropped existing tables")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	if err := seedSpots(ctx, db); err != nil {
		log.Fatalf("failed to seed tourist spots: %v", err)
	}
	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("failed to seed demo users: %v", err)
	}

	invalidateSpotCache(ctx, cfg)

	log.Println("Seeding complete")
}

// invalidateSpotCache drops the cached catalog so the API serves the fresh
// seed data immediately. Redis being unreachable is not fatal for seeding.
func invalidateSpotCache(ctx context.Context, cfg *config.Config) {
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nil)
	if err != nil {
		log.Printf("skipping spot cache invalidation: %v", err)
		return
	}
	defer redisClient.Close()

	if err := internalRedis.NewSpotCache(redisClient).Invalidate(ctx); err != nil {
		log.Printf("failed to invalidate spot cache: %v", err)
		return
	}
	log.Println("Invalidated spot catalog cache")
}

func seedSpots(ctx context.Context, db *sql.DB) error {
	for _, s := range spots {
		_, err := db.ExecContext(ctx, `
			INSERT INTO tourist_spots (spot_id, name, city, description, history, image)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (spot_id) DO UPDATE SET
				name = EXCLUDED.name, city = EXCLUDED.city,
				description = EXCLUDED.description, history = EXCLUDED.history,
				image = EXCLUDED.image
		`, s.spotID, s.name, s.city, s.description, s.history, s.image)
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d tourist spots", len(spots))
	return nil
}

func seedUsers(ctx context.Context, db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, u := range demoUsers {
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (id, name, email, phone, password_hash, role,
				car_number, car_model, price_per_day, languages, experience, guide_number,
				created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			ON CONFLICT (email) DO NOTHING
		`, uuid.New().String(), u.name, u.email, u.phone, string(hash), u.role,
			nullable(u.carNumber), nullable(u.carModel), u.pricePerDay,
			pq.Array(u.languages), nullable(u.experience), nullable(u.guideNumber))
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d demo users (password: password123)", len(demoUsers))
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
