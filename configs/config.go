package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Paging limits per resource.
const (
	DefaultLimitPosts    = 20
	MaxLimitPosts        = 50
	DefaultLimitComments = 50
	MaxLimitComments     = 200
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
}

// Load reads .env (values there override the process environment, same
// as a local dev setup expects) and validates the required keys.
func Load() Config {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.MongoURI == "" || cfg.DBName == "" {
		log.Fatal("MONGO_URI or DB_NAME not set in environment")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	return cfg
}
