package records

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const importBatchSize = 500

var ErrNoDailyStats = errors.New("no daily stats in database")

// SQLSource reads the record collections from a relational database.
type SQLSource struct {
	db *gorm.DB
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// OpenSQL connects to the database, retrying up to maxRetries times.
func OpenSQL(driver, dsn string, maxRetries int, retryInterval time.Duration) (*SQLSource, error) {
	dial, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	for i := 0; i < maxRetries; i++ {
		log.Debugf("Connecting to %s database (attempt %d/%d)", driver, i+1, maxRetries)
		db, err := gorm.Open(dial, config)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
			}
			if pingErr == nil {
				log.Infof("Connected to %s database", driver)
				return &SQLSource{db: db}, nil
			}
			err = pingErr
		}
		log.Warningf("Failed to connect to database: %v. Retrying in %s...", err, retryInterval)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d retries", maxRetries)
}

// Migrate creates or updates the record tables.
func (s *SQLSource) Migrate() error {
	return s.db.AutoMigrate(&DailyStat{}, &SalesLine{}, &FeedbackEntry{}, &InventoryItem{}, &MenuItem{})
}

// Load reads every table. Empty optional tables are reported as missing sources.
func (s *SQLSource) Load() (Collections, error) {
	var c Collections

	if err := s.db.Order("date").Find(&c.DailyStats).Error; err != nil {
		return c, fmt.Errorf("could not load daily stats: %w", err)
	}
	if len(c.DailyStats) == 0 {
		return c, ErrNoDailyStats
	}
	if err := s.db.Order("id").Find(&c.Sales).Error; err != nil {
		return c, fmt.Errorf("could not load sales: %w", err)
	}

	optional := []struct {
		name string
		dst  interface{}
	}{
		{SourceFeedback, &c.Feedback},
		{SourceInventory, &c.Inventory},
		{SourceMenu, &c.Menu},
	}
	for _, src := range optional {
		result := s.db.Order("id").Find(src.dst)
		if result.Error != nil {
			log.Errorf("Failed to read %s table: %v", src.name, result.Error)
		}
		if result.Error != nil || result.RowsAffected == 0 {
			c.Missing = append(c.Missing, src.name)
		}
	}

	normalizeDates(&c)
	log.Infof(
		"Loaded %d daily stats, %d sales lines, %d feedback entries, %d inventory items, %d menu items from database",
		len(c.DailyStats), len(c.Sales), len(c.Feedback), len(c.Inventory), len(c.Menu),
	)
	return c, nil
}

// Import replaces the content of every table with the given collections.
func (s *SQLSource) Import(c Collections) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&DailyStat{}, &SalesLine{}, &FeedbackEntry{}, &InventoryItem{}, &MenuItem{}} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("could not clear table: %w", err)
			}
		}
		if err := insert(tx, c.DailyStats); err != nil {
			return err
		}
		if err := insert(tx, c.Sales); err != nil {
			return err
		}
		if err := insert(tx, c.Feedback); err != nil {
			return err
		}
		if err := insert(tx, c.Inventory); err != nil {
			return err
		}
		return insert(tx, c.Menu)
	})
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, importBatchSize).Error; err != nil {
		return fmt.Errorf("could not insert %T: %w", rows, err)
	}
	return nil
}

func (s *SQLSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func normalizeDates(c *Collections) {
	for i := range c.DailyStats {
		c.DailyStats[i].Date = midnight(c.DailyStats[i].Date)
	}
	for i := range c.Sales {
		c.Sales[i].Date = midnight(c.Sales[i].Date)
	}
	for i := range c.Feedback {
		c.Feedback[i].Date = midnight(c.Feedback[i].Date)
	}
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
