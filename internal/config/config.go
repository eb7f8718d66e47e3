package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMySQL = "mysql"
	SessionStoreRedis = "redis"
)

// Load reads the env file named by START (e.g. .env-local or .env.docker)
// and fails fast on missing required variables.
func Load() {
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatalf("JWT_SECRET is not set in environment")
	}
	if os.Getenv("MYSQL_DSN") == "" {
		log.Fatalf("MySQLDSN is not set in environment")
	}
	if os.Getenv("MONGO_URI") == "" {
		log.Fatalf("MongoURI is not set in environment")
	}
	if os.Getenv("MONGO_DB_NAME") == "" {
		log.Fatalf("MongoDB is not set in environment")
	}
	if SessionStore() == SessionStoreRedis && os.Getenv("REDIS_ADDR") == "" {
		log.Fatalf("REDIS_ADDR is not set in environment")
	}
}

// SessionStore selects the server session backend; defaults to MySQL.
func SessionStore() string {
	if os.Getenv("SESSION_STORE") == SessionStoreRedis {
		return SessionStoreRedis
	}
	return SessionStoreMySQL
}
