package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/pagination"
	"github.com/google/uuid"
)

// MemoryReportRepository keeps reports in process, in insertion order. It
// backs DB_DRIVER=memory and the package tests.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports []models.Report
	now     func() time.Time
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{now: time.Now}
}

func (r *MemoryReportRepository) Create(_ context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := r.now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(report.ID) >= 0 {
		return fmt.Errorf("report %s already exists", report.ID)
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *MemoryReportRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	report := r.reports[i]
	return &report, nil
}

func (r *MemoryReportRepository) Save(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(report.ID)
	if i < 0 {
		return ErrNotFound
	}
	report.CreatedAt = r.reports[i].CreatedAt
	report.UpdatedAt = r.now().UTC()
	r.reports[i] = *report
	return nil
}

func (r *MemoryReportRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.reports = slices.Delete(r.reports, i, i+1)
	return nil
}

func (r *MemoryReportRepository) Count(_ context.Context, pred filter.Predicate) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for i := range r.reports {
		if matches(&r.reports[i], pred) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryReportRepository) Find(_ context.Context, pred filter.Predicate, window pagination.Window) ([]models.Report, error) {
	r.mu.RLock()
	matched := make([]models.Report, 0)
	for i := range r.reports {
		if matches(&r.reports[i], pred) {
			matched = append(matched, r.reports[i])
		}
	}
	r.mu.RUnlock()

	if len(window.Sort) > 0 {
		for _, s := range window.Sort {
			if _, ok := column(s.Field); !ok {
				return nil, fmt.Errorf("unknown sort field %q", s.Field)
			}
		}
		slices.SortStableFunc(matched, func(a, b models.Report) int {
			for _, s := range window.Sort {
				av, _ := a.FieldValue(s.Field)
				bv, _ := b.FieldValue(s.Field)
				c := compareValues(av, bv)
				if s.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	if window.Offset < 0 || window.Offset >= len(matched) {
		return []models.Report{}, nil
	}
	end := len(matched)
	if window.Limit > 0 {
		end = min(window.Offset+window.Limit, len(matched))
	}
	return matched[window.Offset:end], nil
}

func (r *MemoryReportRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryReportRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.reports, func(rep models.Report) bool {
		return rep.ID == id
	})
}

func matches(report *models.Report, pred filter.Predicate) bool {
	for _, c := range pred.Clauses() {
		v, ok := report.FieldValue(c.Field)
		if !ok || fmt.Sprint(v) != c.Value {
			return false
		}
	}
	return true
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		return cmp.Compare(av, b.(string))
	case int:
		return cmp.Compare(av, b.(int))
	case float64:
		return cmp.Compare(av, b.(float64))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}
