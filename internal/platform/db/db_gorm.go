// Package db opens and migrates the application database.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "finance_backend/internal/feature/auth/adapters"
	authentity "finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/platform/config"

	ledgerentity "finance_backend/internal/feature/ledger/domain/entity"
)

// Opener abstracts gorm.Open so connection retries can be tested.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN builds a PostgreSQL DSN from the given configuration.
func BuildDSN(cfg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Db)
}

// ConnectWithRetry attempts to open the database, retrying until the timeout.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to PostgreSQL using the given configuration and runs
// migrations when RUN_MIGRATIONS=true. When no database name is configured
// it falls back to a local SQLite file, which is convenient for development.
//
// TranslateError is required so driver duplicate-key errors surface as
// gorm.ErrDuplicatedKey in the adapters.
func OpenDB(cfg config.Postgres) *gorm.DB {
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Db == "" {
		db, err = gorm.Open(gsqlite.Open("./finance.db"), gormCfg)
		if err != nil {
			log.Fatalf("failed to open sqlite: %v", err)
		}
		log.Println("[INFO] DB_NAME not set; using local SQLite file ./finance.db")
	} else {
		dsn := BuildDSN(cfg)
		db, err = ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), gormCfg)
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Session, Company など）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&ledgerentity.Company{},
			&ledgerentity.Holding{},
			&ledgerentity.HistoryEntry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
