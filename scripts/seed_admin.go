// Seeds the first admin account for the dashboard.
//
// Set attachment provisions regular user accounts on the fly, but nothing
// creates an admin, so a fresh deployment has nobody who can log in. Run
// this once against the live store:
//
//	go run scripts/seed_admin.go -email admin@example.com -password secret
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"practicetime_backend/internal/config"
	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/pkg/database"
	"practicetime_backend/pkg/logger"
	"practicetime_backend/pkg/store"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.InitLogger(cfg)

	var st store.Store
	if cfg.Store.Type == "memory" {
		log.Fatal("store.type is memory; seeding an in-process store is pointless")
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	st = store.NewRedisStore(rdb)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(st)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	existing, found, err := users.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("failed to look up user: %v", err)
	}

	if found {
		existing.PasswordHash = string(hash)
		existing.Role = model.RoleAdmin
		if err := users.Save(ctx, existing); err != nil {
			log.Fatalf("failed to update user: %v", err)
		}
		log.Printf("existing account %s promoted to admin", *email)
		return
	}

	user := &model.User{
		Email:        *email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := users.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Printf("admin account %s created", *email)
}
