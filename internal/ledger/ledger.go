// Package ledger owns the sales ledger. It is the single authority for
// sale records: everything appends and reads through one repository, so
// two copies of the ledger can never drift apart.
package ledger

import (
	"context"
	"sync"
	"time"

	"nipco-portal/internal/models"

	"gorm.io/gorm"
)

// Filter narrows a List call. Zero values mean "no constraint".
type Filter struct {
	StationID string
	Shift     string
	Date      *time.Time // calendar day in local time
}

// SalesLedger is the append-only store for sale records. There is
// deliberately no update or delete: sales are immutable once entered.
type SalesLedger interface {
	Append(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, f Filter) ([]models.Sale, error)
}

// GormLedger persists sales through the shared GORM connection.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Append(ctx context.Context, sale *models.Sale) error {
	if sale.SaleTime.IsZero() {
		sale.SaleTime = time.Now()
	}
	return l.db.WithContext(ctx).Create(sale).Error
}

func (l *GormLedger) List(ctx context.Context, f Filter) ([]models.Sale, error) {
	q := l.db.WithContext(ctx).Model(&models.Sale{})
	if f.StationID != "" {
		q = q.Where("station_id = ?", f.StationID)
	}
	if f.Shift != "" {
		q = q.Where("shift = ?", f.Shift)
	}
	if f.Date != nil {
		start := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		q = q.Where("sale_time >= ? AND sale_time < ?", start, start.AddDate(0, 0, 1))
	}

	var sales []models.Sale
	err := q.Order("sale_time desc").Find(&sales).Error
	return sales, err
}

// MemoryLedger is the in-process implementation used by tests.
type MemoryLedger struct {
	mu     sync.Mutex
	nextID uint
	sales  []models.Sale
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1}
}

func (l *MemoryLedger) Append(_ context.Context, sale *models.Sale) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sale.SaleTime.IsZero() {
		sale.SaleTime = time.Now()
	}
	sale.ID = l.nextID
	l.nextID++
	l.sales = append(l.sales, *sale)
	return nil
}

func (l *MemoryLedger) List(_ context.Context, f Filter) ([]models.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Sale
	for _, s := range l.sales {
		if f.StationID != "" && s.StationID != f.StationID {
			continue
		}
		if f.Shift != "" && s.Shift != f.Shift {
			continue
		}
		if f.Date != nil {
			y1, m1, d1 := s.SaleTime.Date()
			y2, m2, d2 := f.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}
