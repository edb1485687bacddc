package database

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database handle. The embedded sqlite file is the
// default; DB_DRIVER=postgres selects a server-backed deployment. The handle
// is returned to the caller (opened once in main, closed on shutdown), never
// stashed in a package-level variable.
func Connect() (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch strings.ToLower(os.Getenv("DB_DRIVER")) {
	case "", "sqlite":
		file := os.Getenv("DB_FILE")
		if file == "" {
			file = "data.sqlite"
		}
		return gorm.Open(sqlite.Open(file), cfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envDefault("DB_HOST", "localhost"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			envDefault("DB_PORT", "5432"))
		return gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", os.Getenv("DB_DRIVER"))
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
