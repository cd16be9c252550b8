package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB opens the MySQL connection described by the environment and bounds
// the underlying pool.
func InitDB() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	maxConns := poolSize()
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// dsn builds the MySQL connection string. clientFoundRows makes UPDATE report
// matched rows instead of changed rows; the not-found checks in the handlers
// depend on that, otherwise a no-op update on an existing row reads as 404.
func dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		getEnv("DB_USER", "root"),
		getEnv("DB_PASS", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "digiadi"),
	)
}

// poolSize reads DB_MAX_OPEN_CONNS, falling back to 10 when the value is
// missing, malformed, or non-positive (0 would mean unbounded).
func poolSize() int {
	n, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "10"))
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
