package main

import (
	"fmt"

	"cafe-analytics/common"
	"cafe-analytics/records"
)

func openDatabase(config *common.Config) (*records.SQLSource, error) {
	return records.OpenSQL(config.Source, config.DatabaseDSN, config.DBMaxRetries, config.DBRetryInterval)
}

func loadSnapshot(config *common.Config) (*records.Snapshot, error) {
	if config.Source == common.SourceCSV {
		c, err := records.LoadCSV(config.DataDir)
		if err != nil {
			return nil, err
		}
		return records.NewSnapshot(c), nil
	}

	db, err := openDatabase(config)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c, err := db.Load()
	if err != nil {
		return nil, err
	}
	return records.NewSnapshot(c), nil
}

// runImport copies the CSV sources in the data dir into the configured database,
// replacing whatever it held.
func runImport(config *common.Config) error {
	if config.Source == common.SourceCSV {
		return fmt.Errorf("import needs a database source, got %q", config.Source)
	}

	c, err := records.LoadCSV(config.DataDir)
	if err != nil {
		return err
	}

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("could not migrate database: %w", err)
	}
	if err := db.Import(c); err != nil {
		return err
	}
	log.Infof("Imported %d daily stats and %d sales lines into %s database", len(c.DailyStats), len(c.Sales), config.Source)
	return nil
}
