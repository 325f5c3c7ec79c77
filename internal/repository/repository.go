// Package repository persists reports. Every backend supports the predicate
// and paging contract used by the list endpoints.
package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/pagination"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report not found")

type ReportRepository interface {
	pagination.Source[models.Report]

	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// Save writes every mutable column of an existing report and refreshes UpdatedAt.
	Save(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

func column(field string) (string, bool) {
	col, ok := models.ReportColumns[field]
	return col, ok
}
