// Package storage provides a sqlite-backed cache of upstream registry
// responses. The cache only ever shortens the live path: every failure in
// here is treated as a miss so a broken cache can never fail a fetch.
package storage

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"rentradar/server/internal/models"
)

// CachedMonth is one upstream (property type, region, month) response,
// stored as the JSON encoding of its parsed records.
type CachedMonth struct {
	PropertyType string `gorm:"primaryKey"`
	RegionCode   string `gorm:"primaryKey"`
	DealYmd      string `gorm:"primaryKey"`
	Payload      string
	FetchedAt    time.Time
}

// MonthCache implements molit.MonthCache on sqlite.
type MonthCache struct {
	db     *gorm.DB
	ttl    time.Duration
	logger *logrus.Logger
}

// Open creates or opens the cache database at path and migrates its schema.
func Open(path string, ttl time.Duration, logger *logrus.Logger) (*MonthCache, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CachedMonth{}); err != nil {
		return nil, err
	}
	return &MonthCache{db: db, ttl: ttl, logger: logger}, nil
}

// Get returns the cached records for a month, or a miss when absent, expired,
// or unreadable.
func (c *MonthCache) Get(propertyType models.PropertyType, regionCode, dealYmd string) ([]models.RentTransaction, bool) {
	var row CachedMonth
	err := c.db.Where(&CachedMonth{
		PropertyType: string(propertyType),
		RegionCode:   regionCode,
		DealYmd:      dealYmd,
	}).First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.logger.WithError(err).Warn("Month cache read failed")
		}
		return nil, false
	}
	if c.ttl > 0 && time.Since(row.FetchedAt) > c.ttl {
		return nil, false
	}

	var records []models.RentTransaction
	if err := json.Unmarshal([]byte(row.Payload), &records); err != nil {
		c.logger.WithError(err).Warn("Month cache payload corrupt, treating as miss")
		return nil, false
	}
	return records, true
}

// Put stores (or refreshes) one month of records.
func (c *MonthCache) Put(propertyType models.PropertyType, regionCode, dealYmd string, records []models.RentTransaction) {
	payload, err := json.Marshal(records)
	if err != nil {
		c.logger.WithError(err).Error("Failed to encode month cache payload")
		return
	}
	row := CachedMonth{
		PropertyType: string(propertyType),
		RegionCode:   regionCode,
		DealYmd:      dealYmd,
		Payload:      string(payload),
		FetchedAt:    time.Now(),
	}
	if err := c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		c.logger.WithError(err).Error("Failed to write month cache")
	}
}
