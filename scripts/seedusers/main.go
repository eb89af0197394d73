package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/adapter/repository"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/apiclient"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
	"github.com/aseeltahaa/smartspace/internal/usecase/admin"
	"github.com/aseeltahaa/smartspace/internal/usecase/auth"
	"github.com/aseeltahaa/smartspace/pkg/config"
)

// seedusers signs in as an administrator and registers a fixed set of test
// accounts on the SmartSpace API.
func main() {
	email := flag.String("admin-email", "", "administrator email")
	password := flag.String("admin-password", "", "administrator password")
	userPassword := flag.String("password", "Test@1234", "password given to every test user")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("-admin-email and -admin-password are required")
	}

	log.Println("🚀 Starting test users creation...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := zap.NewNop()
	ctx := context.Background()

	store := cache.NewMemoryStore()
	defer store.Close()

	sessions := auth.NewSessionManager(store, logger)
	api := apiclient.New(cfg.API.BaseURL, sessions, apiclient.WithTimeout(cfg.API.Timeout))
	authRepo := repository.NewAuthRepository(api)
	userRepo := repository.NewUserRepository(api)

	service := auth.NewService(authRepo, userRepo, sessions, logger)
	if _, err := service.Login(ctx, *email, *password); err != nil {
		log.Fatalf("Failed to sign in: %v", err)
	}
	defer service.Logout(ctx)

	users := admin.NewUsers(authRepo, userRepo, sessions, logger)

	testUsers := []struct {
		First, Last string
		Role        entities.UserRole
	}{
		{First: "Alice", Last: "Haddad", Role: entities.RoleEmployee},
		{First: "Bob", Last: "Khoury", Role: entities.RoleEmployee},
		{First: "Charlie", Last: "Nassar", Role: entities.RoleEmployee},
		{First: "Diana", Last: "Saleh", Role: entities.RoleGuest},
		{First: "Eve", Last: "Mansour", Role: entities.RoleAdmin},
	}

	log.Println("🔑 Registering test users...")
	for i, tu := range testUsers {
		in := repositories.RegisterInput{
			FirstName: tu.First,
			LastName:  tu.Last,
			Email:     fmt.Sprintf("%s@test.local", strings.ToLower(tu.First)),
			Password:  *userPassword,
			Role:      tu.Role,
		}
		user, err := users.Register(ctx, in)
		if err != nil {
			log.Printf("❌ Failed to create user %s: %v", in.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 User %d: %s %s\n", i+1, tu.First, tu.Last)
		fmt.Printf("Email:        %s\n", in.Email)
		fmt.Printf("User ID:      %s\n", user.ID)
		fmt.Printf("Role:         %s\n", tu.Role)
	}

	log.Println("✅ Done")
	log.Println("💡 Every test user signs in with the -password value")
}
