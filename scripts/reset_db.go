package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
)

const (
	demoEmail    = "demo@weighbridge.local"
	demoPassword = "demo1234"
	demoEntity   = "الجهة التجريبية"
)

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	seed := flag.Bool("seed", true, "create a demo user, entity and ticket")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL USERS, ENTITIES AND TICKETS!")
	fmt.Println()

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	// Load environment variables
	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "weighbridge_db"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println("Resetting database...")

	for _, table := range []string{"tickets", "entities", "login_logs", "users"} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  - Cleared %s\n", table)
	}

	if !*seed {
		fmt.Println("Database reset successful!")
		return
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v\n", err)
	}
	user := &models.User{Name: "Demo", Email: demoEmail, PasswordHash: hash, IsActive: true}
	if err := repositories.NewUserRepository(pool).Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v\n", err)
	}
	fmt.Println("  - Created demo user")

	if _, err := repositories.NewEntityRepository(pool).Create(ctx, user.ID, demoEntity); err != nil {
		log.Fatalf("Failed to create demo entity: %v\n", err)
	}
	ticket := models.NewTicket(models.WithEntity(demoEntity))
	if err := repositories.NewTicketRepository(pool).Upsert(ctx, user.ID, ticket); err != nil {
		log.Fatalf("Failed to create demo ticket: %v\n", err)
	}
	fmt.Println("  - Created demo entity with one ticket")

	fmt.Println()
	fmt.Println("Database reset successful!")
	fmt.Println()
	fmt.Println("Demo credentials:")
	fmt.Printf("  Email:    %s\n", demoEmail)
	fmt.Printf("  Password: %s\n", demoPassword)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
