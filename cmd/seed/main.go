package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/sheet-auth/config"
	userapp "github.com/oksasatya/sheet-auth/internal/application"
	"github.com/oksasatya/sheet-auth/internal/infrastructure/xlsx"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	name := flag.String("name", "demoUser", "display name")
	email := flag.String("email", "demo@example.com", "login email")
	password := flag.String("password", "password123", "plain password")
	flag.Parse()

	store := xlsx.NewUserStore(cfg.UsersFile)
	svc := userapp.NewService(store, helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL), nil, cfg.BcryptCost)

	u, err := svc.Register(context.Background(), userapp.RegisterInput{Name: *name, Email: *email, Password: *password})
	if errors.Is(err, userapp.ErrEmailTaken) {
		fmt.Printf("user already present: email=%s file=%s\n", *email, cfg.UsersFile)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: email=%s name=%s password=%s file=%s\n", u.Email, u.Name, *password, cfg.UsersFile)
}
