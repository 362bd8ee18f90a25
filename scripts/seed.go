package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/devtrails/bootcamp-directory/internal/adapters/database"
	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/postgres"
	"github.com/devtrails/bootcamp-directory/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bootcamps (
	id                TEXT PRIMARY KEY,
	owner_id          TEXT NOT NULL,
	name              TEXT NOT NULL,
	slug              TEXT NOT NULL,
	description       TEXT NOT NULL,
	website           TEXT,
	phone             TEXT,
	email             TEXT,
	address           TEXT,
	longitude         DOUBLE PRECISION NOT NULL DEFAULT 0,
	latitude          DOUBLE PRECISION NOT NULL DEFAULT 0,
	formatted_address TEXT,
	city              TEXT,
	zipcode           TEXT,
	careers           TEXT[] NOT NULL DEFAULT '{}',
	average_cost      DOUBLE PRECISION NOT NULL DEFAULT 0,
	photo             TEXT,
	housing           BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bootcamps_owner ON bootcamps (owner_id);
CREATE INDEX IF NOT EXISTS idx_bootcamps_coords ON bootcamps (latitude, longitude);

CREATE TABLE IF NOT EXISTS reviews (
	id          TEXT PRIMARY KEY,
	bootcamp_id TEXT NOT NULL,
	author_id   TEXT NOT NULL,
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	rating      INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_bootcamp ON reviews (bootcamp_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := pgClient.DB()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := db.ExecContext(ctx, `TRUNCATE TABLE reviews, bootcamps, users`); err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	bootcampRepo := database.NewBootcampAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	// 1. Seed users
	admin := entities.User{ID: uuid.New().String(), Name: "Admin Account", Email: "admin@devtrails.io", Role: entities.RoleAdmin, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	publishers := []entities.User{
		{ID: uuid.New().String(), Name: "John Doe", Email: "john@devtrails.io", Role: entities.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Sasha Ryan", Email: "sasha@devtrails.io", Role: entities.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Kevin Smith", Email: "kevin@devtrails.io", Role: entities.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	if err := userRepo.Create(ctx, &admin); err != nil {
		log.Printf("Failed to create user %s: %v", admin.Email, err)
	}
	for i := range publishers {
		if err := userRepo.Create(ctx, &publishers[i]); err != nil {
			log.Printf("Failed to create user %s: %v", publishers[i].Email, err)
		}
	}

	// 2. Seed bootcamps. Locations are pre-resolved so seeding never calls a
	// geocoding API.
	bootcamps := []entities.Bootcamp{
		{
			ID:          uuid.New().String(),
			OwnerID:     publishers[0].ID,
			Name:        "Devworks Bootcamp",
			Slug:        entities.Slugify("Devworks Bootcamp"),
			Description: "Devworks is a full stack JavaScript Bootcamp located in the heart of Boston that focuses on the technologies you need to get a high paying job as a web developer",
			Website:     "https://devworks.com",
			Phone:       "(111) 111-1111",
			Email:       "enroll@devworks.com",
			Address:     "233 Bay State Rd Boston MA 02215",
			Location: entities.Location{
				Longitude: -71.104028, Latitude: 42.350846,
				FormattedAddress: "233 Bay State Rd, Boston, MA 02215", City: "Boston", Zipcode: "02215",
			},
			Careers:     []string{"Web Development", "UI/UX", "Business"},
			AverageCost: 10000,
			Housing:     true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     publishers[1].ID,
			Name:        "ModernTech Bootcamp",
			Slug:        entities.Slugify("ModernTech Bootcamp"),
			Description: "ModernTech has one goal, and that is to make you a rockstar developer and/or designer with a six figure salary",
			Website:     "https://moderntech.com",
			Phone:       "(222) 222-2222",
			Email:       "enroll@moderntech.com",
			Address:     "220 Pawtucket St Lowell MA 01854",
			Location: entities.Location{
				Longitude: -71.325992, Latitude: 42.650498,
				FormattedAddress: "220 Pawtucket St, Lowell, MA 01854", City: "Lowell", Zipcode: "01854",
			},
			Careers:     []string{"Web Development", "UI/UX", "Mobile Development"},
			AverageCost: 12000,
			Housing:     false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     publishers[2].ID,
			Name:        "Codemasters",
			Slug:        entities.Slugify("Codemasters"),
			Description: "Is coding your passion? Codemasters will give you the skills and the tools to become the best developer possible",
			Website:     "https://codemasters.com",
			Phone:       "(333) 333-3333",
			Email:       "enroll@codemasters.com",
			Address:     "85 South Prospect St Burlington VT 05405",
			Location: entities.Location{
				Longitude: -73.19116, Latitude: 44.47511,
				FormattedAddress: "85 South Prospect St, Burlington, VT 05405", City: "Burlington", Zipcode: "05405",
			},
			Careers:     []string{"Web Development", "Data Science", "Business"},
			AverageCost: 8000,
			Housing:     false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	for i := range bootcamps {
		if err := bootcampRepo.Create(ctx, &bootcamps[i]); err != nil {
			log.Printf("Failed to create bootcamp %s: %v", bootcamps[i].Name, err)
		}
	}

	// 3. Seed a few reviews across the bootcamps
	titles := []string{"Learned a ton", "Great teachers", "Got me a job"}
	for i, b := range bootcamps {
		review := entities.Review{
			ID:         uuid.New().String(),
			BootcampID: b.ID,
			AuthorID:   publishers[(i+1)%len(publishers)].ID,
			Title:      titles[i%len(titles)],
			Body:       "The curriculum was current and the instructors were responsive.",
			Rating:     7 + i%3,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := reviewRepo.Create(ctx, &review); err != nil {
			log.Printf("Failed to create review for %s: %v", b.Name, err)
		}
	}

	log.Println("Seeding completed successfully")
}
