package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the main back-office database (purchasing, inventory,
// sales). SQLite by default; MYSQL_DSN switches to MySQL for shared
// deployments.
func NewDB() (*gorm.DB, error) {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = filepath.Join("data", "restaurant.db")
	}
	return openSQLite(path)
}

// NewSpecialDB opens the special-module database (heritage dishes,
// DIY drinks, sync logs). Always a separate file from the main DB.
func NewSpecialDB() (*gorm.DB, error) {
	path := os.Getenv("SPECIAL_DB_PATH")
	if path == "" {
		path = filepath.Join("data", "special.db")
	}
	return openSQLite(path)
}

func openSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, err
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	return db, nil
}

func newGormLogger() logger.Interface {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)
}
