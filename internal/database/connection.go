// internal/database/connection.go
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/models"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

func Initialize(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		DriverName: driverName(cfg.Driver),
		DSN:        cfg.DSN(),
	})

	db, err := Open(dialector, cfg.LogLevel, log)
	if err != nil {
		return nil, err
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithField("target", cfg.Target()).Info("Database connection established")
	return db, nil
}

// Open wraps gorm.Open with the logger and error translation every
// connection in this service uses.
func Open(dialector gorm.Dialector, logLevel string, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(log.WithField("component", "gorm"), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Collection{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_unit_price ON products(unit_price)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Substring search over title/description
		"CREATE EXTENSION IF NOT EXISTS pg_trgm",
		"CREATE INDEX IF NOT EXISTS idx_products_title_trgm ON products USING GIN (LOWER(title) gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_products_description_trgm ON products USING GIN (LOWER(description) gin_trgm_ops)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	var count int64
	if err := db.Model(&models.Collection{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count collections: %w", err)
	}
	if count > 0 {
		logrus.Info("Catalog already populated, skipping seed")
		return nil
	}

	seed := map[string][]models.Product{
		"Beverages": {
			{Title: "Cold Brew Coffee", Slug: "cold-brew-coffee", Description: "Slow steeped, 12oz bottle.", Inventory: 40, UnitPrice: decimal.RequireFromString("4.50")},
			{Title: "Sparkling Water", Slug: "sparkling-water", Description: "Lightly carbonated spring water.", Inventory: 120, UnitPrice: decimal.RequireFromString("1.25")},
		},
		"Baking": {
			{Title: "Bread Flour", Slug: "bread-flour", Description: "High protein flour, 2kg.", Inventory: 25, UnitPrice: decimal.RequireFromString("6.80")},
		},
		"Stationery": {},
	}

	return WithTransaction(db, func(tx *gorm.DB) error {
		for title, products := range seed {
			collection := models.Collection{Title: title}
			if err := tx.Create(&collection).Error; err != nil {
				return fmt.Errorf("failed to create collection %s: %w", title, err)
			}
			for i := range products {
				products[i].CollectionID = collection.ID
				if err := tx.Create(&products[i]).Error; err != nil {
					return fmt.Errorf("failed to create product %s: %w", products[i].Slug, err)
				}
			}
		}
		logrus.WithField("collections", len(seed)).Info("Initial data seeding completed")
		return nil
	})
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// IsForeignKeyViolation reports whether err is a rejected reference, either
// as translated by GORM (pgx, sqlite) or as a raw lib/pq error.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	return false
}

func driverName(driver string) string {
	if driver == "postgres" {
		return "postgres" // registered by lib/pq
	}
	return "" // gorm's default pgx stdlib driver
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
