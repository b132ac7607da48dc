package records

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var sourceFiles = map[string]string{
	SourceDailyStats: "daily_stats.csv",
	SourceSales:      "sales.csv",
	SourceFeedback:   "feedback.csv",
	SourceInventory:  "inventory.csv",
	SourceMenu:       "menu.csv",
}

// LoadCSV reads every source file found in dir. daily_stats.csv is mandatory; a
// missing sales file yields no sales, and the remaining sources are reported as
// missing so queries over them return empty results instead of failing.
func LoadCSV(dir string) (Collections, error) {
	var c Collections

	if err := readSource(dir, SourceDailyStats, &c.DailyStats); err != nil {
		return c, fmt.Errorf("could not load daily stats: %w", err)
	}

	optional := []struct {
		name string
		dst  interface{}
	}{
		{SourceSales, &c.Sales},
		{SourceFeedback, &c.Feedback},
		{SourceInventory, &c.Inventory},
		{SourceMenu, &c.Menu},
	}
	for _, src := range optional {
		err := readSource(dir, src.name, src.dst)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Errorf("Failed to read %s source: %v", src.name, err)
		} else {
			log.Warningf("Source %s not found in %s", src.name, dir)
		}
		if src.name != SourceSales {
			c.Missing = append(c.Missing, src.name)
		}
	}

	log.Infof(
		"Loaded %d daily stats, %d sales lines, %d feedback entries, %d inventory items, %d menu items",
		len(c.DailyStats), len(c.Sales), len(c.Feedback), len(c.Inventory), len(c.Menu),
	)
	return c, nil
}

func readSource(dir, name string, dst interface{}) error {
	reader := Reader{FilePath: filepath.Join(dir, sourceFiles[name])}
	return reader.ReadAll(dst)
}
