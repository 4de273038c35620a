// Package db opens the application's database connection.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	accountentity "pkgdir/internal/feature/account/domain/entity"
	activityentity "pkgdir/internal/feature/activity/domain/entity"
	catalogentity "pkgdir/internal/feature/catalog/domain/entity"
	ratingentity "pkgdir/internal/feature/rating/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string

	// InstanceName selects a Cloud SQL unix socket connection when set,
	// taking precedence over Host/Port.
	InstanceName string
}

// LoadConfigFromEnv reads the connection settings from the DB_*
// environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN renders the MySQL DSN for the given settings.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener opens a gorm connection for a DSN. Injected so retry behavior
// is testable without a database.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry keeps trying to open the connection until timeout,
// sleeping 3 seconds between attempts while the database comes up.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to MySQL using the DB_* environment variables,
// retrying for up to a minute while the database comes up. With
// RUN_MIGRATIONS=true the schema is auto-migrated after connecting.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	db, err := ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate creates or updates the schema for every entity the service
// persists.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountentity.User{},
		&accountentity.PackageUsage{},
		&catalogentity.Package{},
		&catalogentity.Author{},
		&catalogentity.AuthorPackage{},
		&catalogentity.AuthorIdentity{},
		&ratingentity.Rating{},
		&activityentity.Activity{},
	)
}
