// Command seed loads development fixtures from a YAML file into the
// database. Existing users (matched by email) are skipped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ghodss/yaml"

	"github.com/tripnest/vacation-api/internal/config"
	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/postgres"
	"github.com/tripnest/vacation-api/internal/service"
)

type fixtures struct {
	Users []struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
	} `json:"users"`
	Vacations []struct {
		Destination string  `json:"destination"`
		Description string  `json:"description"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
		Price       float64 `json:"price"`
		Image       string  `json:"image"`
	} `json:"vacations"`
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var fx fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	vacationRepo := postgres.NewVacationRepo(db)
	authService := service.NewAuthService(userRepo)

	for _, u := range fx.Users {
		_, err := authService.Register(ctx, service.RegisterInput{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Password:  u.Password,
			Role:      u.Role,
		})
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			log.Printf("user %s already present, skipping", u.Email)
		case err != nil:
			log.Fatalf("seed user %s: %v", u.Email, err)
		default:
			log.Printf("seeded user %s", u.Email)
		}
	}

	for _, v := range fx.Vacations {
		start, err := parseFixtureDate(v.StartDate)
		if err != nil {
			log.Fatalf("vacation %q: %v", v.Destination, err)
		}
		end, err := parseFixtureDate(v.EndDate)
		if err != nil {
			log.Fatalf("vacation %q: %v", v.Destination, err)
		}

		stored, err := vacationRepo.Create(ctx, &domain.Vacation{
			Destination: v.Destination,
			Description: v.Description,
			StartDate:   start,
			EndDate:     end,
			Price:       v.Price,
			Image:       v.Image,
		})
		if err != nil {
			log.Fatalf("seed vacation %q: %v", v.Destination, err)
		}
		log.Printf("seeded vacation %d (%s)", stored.ID, stored.Destination)
	}
}

func parseFixtureDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return t, nil
}
