package migrations

import (
	"errors"
	"log"

	"storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds default data.
func RunMigrations(db *gorm.DB, adminEmail string) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.NewsletterSubscriber{},
		&models.ContactMessage{},
	)
	if err != nil {
		return err
	}

	if err := seedAdminUser(db, adminEmail); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}
	if err := seedSampleProducts(db); err != nil {
		log.Printf("Warning: Failed to seed sample products: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func seedAdminUser(db *gorm.DB, adminEmail string) error {
	var existing models.User
	err := db.Where("role = ?", string(models.RoleAdmin)).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// Default password, expected to be changed on first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         string(models.RoleAdmin),
	}
	return db.Create(admin).Error
}

func seedSampleProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Classic Tee",
			Description: "Heavyweight cotton t-shirt",
			Price:       1500000,
			Stock:       50,
			Category:    "tops",
			Sizes:       "S,M,L,XL",
			Colors:      "black,white",
		},
		{
			Name:        "Cargo Pants",
			Description: "Relaxed fit cargo pants",
			Price:       3500000,
			Stock:       30,
			Category:    "bottoms",
			Sizes:       "30,32,34,36",
			Colors:      "olive,black",
		},
		{
			Name:        "Logo Cap",
			Description: "Embroidered six-panel cap",
			Price:       1200000,
			Stock:       40,
			Category:    "accessories",
			Colors:      "navy,cream",
		},
	}
	return db.Create(&products).Error
}
