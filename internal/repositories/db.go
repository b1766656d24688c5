// Package repositories provides the data access layer. It owns every balance
// mutation: wallet updates and transaction inserts always travel together
// through ExecuteInTransaction so they commit or roll back as one unit.
package repositories

import (
	"log"
	"time"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/config"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the shared Redis-backed cache.
var CacheService *cache.CacheService

// InitDB connects to Postgres, configures pooling, runs migrations and
// initializes the Redis cache. TranslateError is enabled so unique-index
// violations surface as gorm.ErrDuplicatedKey.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "claverica") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	CacheService = cache.NewCacheService(cache.NewRedisClient(redisCfg), 24*time.Hour)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.TransferLimit{},
		&models.FeeConfiguration{},
		&models.SavingsProduct{},
		&models.SavingsAccount{},
		&models.SavingsTransaction{},
		&models.LoanProduct{},
		&models.Loan{},
		&models.LoanRepayment{},
		&models.CryptoCurrency{},
		&models.CryptoWallet{},
		&models.CryptoTransaction{},
		&models.Notification{},
	); err != nil {
		return err
	}

	log.Println("database initialized")
	return nil
}
