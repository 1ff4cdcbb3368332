// Command admin-create provisions an admin account directly in the database.
// The registration form only ever creates students, so the first admin (and
// any later one) comes from here.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-desk.backend/internal/config"
	"hostel-desk.backend/internal/domain/entities"
	"hostel-desk.backend/internal/infrastructure/models"
	"hostel-desk.backend/internal/infrastructure/repositories"
	"hostel-desk.backend/pkg/crypto"
)

func main() {
	fullName := flag.String("name", "", "admin full name")
	email := flag.String("email", "", "admin email address")
	staffNo := flag.String("staff-no", "", "staff number used to log in")
	password := flag.String("password", "", "initial password")
	hostel := flag.String("hostel", entities.Hostels[0], "hostel the admin oversees")
	room := flag.String("room", "Office", "office or room label")
	flag.Parse()

	if err := run(*fullName, *email, *staffNo, *password, *hostel, *room); err != nil {
		log.Fatal(err)
	}
}

func run(fullName, email, staffNo, password, hostel, room string) error {
	if fullName == "" || email == "" || staffNo == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(cfg.Accounts.AdminEmailDomain)) {
		return fmt.Errorf("admin email must belong to the %s domain", cfg.Accounts.AdminEmailDomain)
	}
	if len(staffNo) < 6 || len(staffNo) > 20 {
		return fmt.Errorf("staff number must be 6-20 characters")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.URL(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	admin := &entities.User{
		FullName:     fullName,
		Email:        email,
		MatricNo:     staffNo,
		PasswordHash: hash,
		HostelName:   hostel,
		RoomNumber:   room,
		Role:         entities.UserRoleAdmin,
	}
	if err := userRepo.Create(context.Background(), admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("admin account %q created (id %d)\n", staffNo, admin.ID)
	return nil
}
