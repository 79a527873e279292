package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// DB is the global database instance
var DB *gorm.DB
var JWTSecret []byte
var EncryptionKey [32]byte

// BaseURL is the public address used to build links in outgoing emails.
var BaseURL string

// SMTP settings for the notification dispatcher.
var (
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
)

func LoadConfig() {
	// Load .env file if present; in containers the variables come from
	// the environment directly.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Set JWT secret key from environment variable
	JWTSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTSecret) == 0 {
		log.Fatalf("JWT secret key not set")
	}

	// Load encryption key from environment variable
	key := os.Getenv("ENCRYPTION_KEY")
	if len(key) < 32 {
		log.Fatalf("Encryption key must be 32 bytes")
	}

	// Copy the key into the encryptionKey array
	copy(EncryptionKey[:], []byte(key))

	BaseURL = os.Getenv("BASE_URL")
	if BaseURL == "" {
		BaseURL = "http://localhost:8080"
	}

	SMTPHost = os.Getenv("SMTP_HOST")
	SMTPUser = os.Getenv("SMTP_USER")
	SMTPPassword = os.Getenv("SMTP_PASSWORD")
	EmailFrom = os.Getenv("EMAIL_FROM")
	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Fatalf("Invalid SMTP_PORT: %v", err)
		}
		SMTPPort = p
	} else {
		SMTPPort = 587
	}
}

func ConnectDatabase() {
	// Load DB config from environment variables
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var errDB error
	DB, errDB = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if errDB != nil {
		log.Fatalf("Error connecting to database: %v", errDB)
	}

	log.Println("Database connected successfully")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	log.Println("Database migrated successfully")
}

// Migrate runs the schema migrations for every entity. Split out so tests
// can migrate their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Poll{},
		&models.Candidate{},
		&models.Voter{},
		&models.Vote{},
	)
}
