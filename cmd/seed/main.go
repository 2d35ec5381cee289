package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"lablend/internal/database"
	"lablend/internal/domain"
	"lablend/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "lab.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM log_entries")
	db.Exec("DELETE FROM tools")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := &domain.User{Username: "admin", PasswordHash: string(hash)}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("seeding admin failed:", err)
	}
	log.Println("Created admin account (admin / admin123)")

	tools := []domain.Tool{
		{Name: "Digital Multimeter", Category: "Electronics", IsAvailable: true},
		{Name: "Oscilloscope", Category: "Electronics", IsAvailable: true},
		{Name: "3D Printer", Category: "Fabrication", IsAvailable: true},
		{Name: "Soldering Station", Category: "Electronics", IsAvailable: true},
		{Name: "Torque Wrench", Category: "Mechanics", IsAvailable: true},
		{Name: "Heat Gun", Category: "General", IsAvailable: true},
	}
	for i := range tools {
		if err := toolRepo.Create(ctx, &tools[i]); err != nil {
			log.Fatal("seeding tools failed:", err)
		}
	}
	log.Printf("Created %d sample tools", len(tools))

	log.Println("Seed complete.")
}
