package config

import (
	"log"
	"os"

	"github.com/gurmukh6912/saskfood-connect/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "saskfood_super_secret_2024"))

// Load reads an optional .env file and re-reads the env-backed settings.
// Missing .env is fine; real environment variables always win.
func Load() {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "saskfood_super_secret_2024"))
}

// ListenAddr is the HTTP bind address
func ListenAddr() string {
	return getEnv("LISTEN_ADDR", ":8080")
}

// DatabasePath is the SQLite file path
func DatabasePath() string {
	return getEnv("DATABASE_PATH", "saskfood.db")
}

// EthereumRPCURL is the JSON-RPC endpoint used for payment confirmation
func EthereumRPCURL() string {
	return getEnv("ETHEREUM_RPC_URL", "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database at dsn and migrates the schema
func InitDB(dsn string) {
	db, err := OpenDB(dsn)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	DB = db
	log.Println("Database connected and migrated successfully")
}

// OpenDB opens a database without touching the package-level DB handle.
// Tests use it to get isolated in-memory instances.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Customer{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.DeliveryBid{},
		&models.Delivery{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
