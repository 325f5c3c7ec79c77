package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReportRepository stores reports in PostgreSQL.
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return &report, nil
}

func (r *GormReportRepository) Save(ctx context.Context, report *models.Report) error {
	// Omit keeps the owner and creation time out of the UPDATE statement.
	result := r.db.WithContext(ctx).
		Model(report).
		Select("*").
		Omit("id", "reporter_id", "created_at").
		Updates(report)
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormReportRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	var total int64
	query, err := r.scoped(ctx, pred)
	if err != nil {
		return 0, err
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}

func (r *GormReportRepository) Find(ctx context.Context, pred filter.Predicate, window pagination.Window) ([]models.Report, error) {
	query, err := r.scoped(ctx, pred)
	if err != nil {
		return nil, err
	}

	if len(window.Sort) == 0 {
		query = query.Order("created_at ASC").Order("id ASC")
	}
	for _, s := range window.Sort {
		col, ok := column(s.Field)
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", s.Field)
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Desc})
	}

	reports := make([]models.Report, 0, window.Limit)
	if err := query.Offset(window.Offset).Limit(window.Limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// scoped applies the predicate. Column names come from models.ReportColumns,
// never from the request.
func (r *GormReportRepository) scoped(ctx context.Context, pred filter.Predicate) (*gorm.DB, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	for _, c := range pred.Clauses() {
		col, ok := column(c.Field)
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", c.Field)
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: col}, Value: c.Value})
	}
	return query, nil
}
