package records

import (
	"errors"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// ErrMissingSource is returned when an optional collection was not available at load time.
var ErrMissingSource = errors.New("record source not loaded")

const (
	SourceDailyStats = "daily_stats"
	SourceSales      = "sales"
	SourceFeedback   = "feedback"
	SourceInventory  = "inventory"
	SourceMenu       = "menu"
)

// Collections is the raw output of a loader.
type Collections struct {
	DailyStats []DailyStat
	Sales      []SalesLine
	Feedback   []FeedbackEntry
	Inventory  []InventoryItem
	Menu       []MenuItem
	Missing    []string
}

// Snapshot is the read-only view of every record collection. It is built once and
// shared by all requests; callers must not modify the slices it hands out.
type Snapshot struct {
	dailyStats []DailyStat
	sales      []SalesLine
	feedback   []FeedbackEntry
	inventory  []InventoryItem
	menu       []MenuItem
	missing    map[string]bool

	// day number -> indexes into sales
	salesByDay map[int64]*roaring.Bitmap
}

func NewSnapshot(c Collections) *Snapshot {
	daily := make([]DailyStat, len(c.DailyStats))
	copy(daily, c.DailyStats)
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	s := &Snapshot{
		dailyStats: daily,
		sales:      c.Sales,
		feedback:   c.Feedback,
		inventory:  c.Inventory,
		menu:       c.Menu,
		missing:    make(map[string]bool),
		salesByDay: make(map[int64]*roaring.Bitmap),
	}
	for _, name := range c.Missing {
		s.missing[name] = true
	}
	for i, line := range s.sales {
		day := dayNumber(line.Date)
		bm, ok := s.salesByDay[day]
		if !ok {
			bm = roaring.New()
			s.salesByDay[day] = bm
		}
		bm.Add(uint32(i))
	}
	for _, bm := range s.salesByDay {
		bm.RunOptimize()
	}
	return s
}

func dayNumber(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// DailyStats returns the daily rollups sorted by date.
func (s *Snapshot) DailyStats() []DailyStat { return s.dailyStats }

func (s *Snapshot) Sales() []SalesLine { return s.sales }

func (s *Snapshot) Feedback() ([]FeedbackEntry, error) {
	if s.missing[SourceFeedback] {
		return nil, ErrMissingSource
	}
	return s.feedback, nil
}

func (s *Snapshot) Inventory() ([]InventoryItem, error) {
	if s.missing[SourceInventory] {
		return nil, ErrMissingSource
	}
	return s.inventory, nil
}

func (s *Snapshot) Menu() ([]MenuItem, error) {
	if s.missing[SourceMenu] {
		return nil, ErrMissingSource
	}
	return s.menu, nil
}

// SalesBetween returns the sales lines dated within [start, end], in load order.
// A zero bound leaves that side open.
func (s *Snapshot) SalesBetween(start, end time.Time) []SalesLine {
	if start.IsZero() && end.IsZero() {
		return s.sales
	}
	lo, hi := int64(-1<<62), int64(1<<62)
	if !start.IsZero() {
		lo = dayNumber(start)
	}
	if !end.IsZero() {
		hi = dayNumber(end)
	}

	var selected []*roaring.Bitmap
	for day, bm := range s.salesByDay {
		if day >= lo && day <= hi {
			selected = append(selected, bm)
		}
	}
	if len(selected) == 0 {
		return []SalesLine{}
	}

	rows := roaring.FastOr(selected...)
	out := make([]SalesLine, 0, rows.GetCardinality())
	it := rows.Iterator()
	for it.HasNext() {
		out = append(out, s.sales[it.Next()])
	}
	return out
}

// Missing lists the optional sources that were not available at load time.
func (s *Snapshot) Missing() []string {
	out := make([]string, 0, len(s.missing))
	for name := range s.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Counts reports how many records each collection holds.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		SourceDailyStats: len(s.dailyStats),
		SourceSales:      len(s.sales),
		SourceFeedback:   len(s.feedback),
		SourceInventory:  len(s.inventory),
		SourceMenu:       len(s.menu),
	}
}
