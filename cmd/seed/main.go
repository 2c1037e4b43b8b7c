package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/config"
	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/postgres"
	"github.com/roamly/vacations-api/internal/util"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	password  string
	role      domain.Role
}

type seedVacation struct {
	countryCode string
	destination string
	description string
	startOffset int
	nights      int
	price       string
}

var sampleUsers = []seedUser{
	{"Admin", "User", "admin@example.com", "Admin12345", domain.RoleAdmin},
	{"John", "Doe", "john.doe@example.com", "Password123", domain.RoleUser},
	{"Jane", "Smith", "jane.smith@example.com", "Password123", domain.RoleUser},
}

var sampleVacations = []seedVacation{
	{"US", "Hawaii Paradise", "Experience the magic of Hawaii with this all-inclusive package. Visit stunning beaches, explore volcanic landscapes, and immerse yourself in rich Polynesian culture.", 30, 7, "2999.99"},
	{"GB", "London Explorer", "Discover the historic charm of London. Visit Buckingham Palace, Tower Bridge, and the British Museum. Includes guided tours and luxury accommodation.", 45, 7, "2499.99"},
	{"FR", "Paris Romance", "Experience the romance of Paris. Visit the Eiffel Tower, Louvre Museum, and Notre-Dame. Includes Seine River cruise and fine dining experiences.", 60, 7, "2799.99"},
	{"IT", "Rome & Florence", "Explore the art and history of Italy. Visit the Colosseum, Vatican City, and Florence's Renaissance treasures. Includes wine tasting and cooking classes.", 75, 7, "3199.99"},
	{"ES", "Barcelona Adventure", "Discover the vibrant city of Barcelona. Visit Gaudi's masterpieces, enjoy tapas tours, and relax on Mediterranean beaches. Includes flamenco show.", 90, 7, "2299.99"},
}

func main() {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userIDs, err := seedUsers(ctx, db)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	vacationIDs, err := seedVacations(ctx, db)
	if err != nil {
		log.Fatalf("seed vacations: %v", err)
	}
	if err := seedLikes(ctx, db, userIDs, vacationIDs); err != nil {
		log.Fatalf("seed likes: %v", err)
	}

	log.Println("database seeded")
}

func seedUsers(ctx context.Context, db *sqlx.DB) ([]uuid.UUID, error) {
	const query = `
		INSERT INTO user_account (first_name, last_name, email, password_hash, password_salt, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`
	ids := make([]uuid.UUID, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		hash, salt, err := util.DerivePassword(u.password)
		if err != nil {
			return nil, err
		}
		var id uuid.UUID
		if err := db.GetContext(ctx, &id, query, u.firstName, u.lastName, u.email, hash, salt, u.role); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedVacations(ctx context.Context, db *sqlx.DB) ([]uuid.UUID, error) {
	const insertQuery = `
		INSERT INTO vacation (country_id, destination, description, start_date, end_date, price)
		SELECT c.id, $2, $3, $4, $5, $6
		FROM country c
		WHERE c.code = $1
		ON CONFLICT (country_id, destination, start_date) DO NOTHING
		RETURNING id
	`
	const existingQuery = `
		SELECT v.id
		FROM vacation v
		JOIN country c ON c.id = v.country_id
		WHERE c.code = $1 AND v.destination = $2 AND v.start_date = $3
	`
	now := time.Now().UTC().Truncate(24 * time.Hour)
	ids := make([]uuid.UUID, 0, len(sampleVacations))
	for _, v := range sampleVacations {
		price, err := domain.ParseMoney(v.price)
		if err != nil {
			return nil, err
		}
		start := now.AddDate(0, 0, v.startOffset)
		end := start.AddDate(0, 0, v.nights)

		var id uuid.UUID
		err = db.GetContext(ctx, &id, insertQuery, v.countryCode, v.destination, v.description, start, end, price)
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict rows return nothing; pick up the row from the
			// previous run so likes still attach to it.
			err = db.GetContext(ctx, &id, existingQuery, v.countryCode, v.destination, start)
		}
		if err != nil {
			return nil, fmt.Errorf("seed vacation %q: %w", v.destination, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedLikes(ctx context.Context, db *sqlx.DB, userIDs, vacationIDs []uuid.UUID) error {
	const query = `
		INSERT INTO vacation_like (user_id, vacation_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, vacation_id) DO NOTHING
	`
	// Each non-admin demo user likes a couple of the seeded vacations.
	for i, userID := range userIDs {
		if i == 0 {
			continue
		}
		for j, vacationID := range vacationIDs {
			if (i+j)%2 == 0 {
				if _, err := db.ExecContext(ctx, query, userID, vacationID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
