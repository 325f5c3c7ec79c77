package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/pagination"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const msgReportNotFound = "Report not found"

// ReportService owns report creation, listing and owner-scoped mutation.
type ReportService struct {
	repo     repository.ReportRepository
	gate     *authz.Gate
	filters  *filter.Builder
	validate *validator.Validate
}

func NewReportService(repo repository.ReportRepository, gate *authz.Gate, validate *validator.Validate) *ReportService {
	return &ReportService{
		repo:     repo,
		gate:     gate,
		filters:  filter.NewReportBuilder(),
		validate: validate,
	}
}

func (s *ReportService) CreateReport(ctx context.Context, callerID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	trimCreate(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	status := req.Status
	if status == "" {
		status = models.ReportStatusOpen
	}

	report := &models.Report{
		ID:                 uuid.New(),
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Status:             status,
		ReporterID:         callerID,
		ScammerName:        req.ScammerName,
		ScammerPhone:       req.ScammerPhone,
		ScammerEmail:       req.ScammerEmail,
		ScammerWebsite:     req.ScammerWebsite,
		ScammerSocialMedia: req.ScammerSocialMedia,
		Location:           req.Location,
		AmountLost:         req.AmountLost,
		Evidence:           req.Evidence,
		ViewCount:          req.ViewCount,
		Upvotes:            req.Upvotes,
		Downvotes:          req.Downvotes,
		IsTrending:         req.IsTrending,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		slog.ErrorContext(ctx, "report create failed", "action", "createReport", "user_id", callerID.String(), "error", err)
		return nil, err
	}
	return report, nil
}

// QueryReports lists every report matching the whitelisted filters in params.
func (s *ReportService) QueryReports(ctx context.Context, params map[string]string) (*pagination.Result[models.Report], error) {
	return s.list(ctx, params, filter.ScopeAll, uuid.Nil)
}

// GetUserReports lists only the caller's reports, whatever params contain.
func (s *ReportService) GetUserReports(ctx context.Context, callerID uuid.UUID, params map[string]string) (*pagination.Result[models.Report], error) {
	return s.list(ctx, params, filter.ScopeOwn, callerID)
}

func (s *ReportService) list(ctx context.Context, params map[string]string, scope filter.Scope, callerID uuid.UUID) (*pagination.Result[models.Report], error) {
	opts, err := pagination.ParseOptions(pagination.RawOptions{
		SortBy: params["sortBy"],
		Limit:  params["limit"],
		Page:   params["page"],
	}, models.SortableReportFields)
	if err != nil {
		return nil, err
	}

	pred := s.filters.Build(params, scope, callerID.String())
	result, err := pagination.Paginate[models.Report](ctx, s.repo, pred, opts)
	if err != nil {
		if _, ok := apperr.As(err); !ok {
			slog.ErrorContext(ctx, "report listing failed", "action", "listReports", "error", err)
		}
		return nil, err
	}
	return result, nil
}

// GetReportByID is the public read; it performs no ownership check.
func (s *ReportService) GetReportByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storageError(ctx, "getReport", id, err)
	}
	return report, nil
}

// GetOwnedReport loads a report the caller may mutate. A report owned by
// someone else is reported as not found unless the role is elevated, so its
// existence is not revealed.
func (s *ReportService) GetOwnedReport(ctx context.Context, id, callerID uuid.UUID, role string) (*models.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storageError(ctx, "getOwnedReport", id, err)
	}
	if report.ReporterID != callerID && !s.gate.IsElevated(role) {
		return nil, apperr.NotFound(msgReportNotFound)
	}
	return report, nil
}

func (s *ReportService) UpdateReport(ctx context.Context, id, callerID uuid.UUID, role string, req *dto.UpdateReportRequest) (*models.Report, error) {
	if req.IsEmpty() {
		return nil, apperr.Validation("update must set at least one field")
	}
	trimUpdate(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	report, err := s.GetOwnedReport(ctx, id, callerID, role)
	if err != nil {
		return nil, err
	}

	applyUpdate(report, req)
	if err := s.repo.Save(ctx, report); err != nil {
		return nil, s.storageError(ctx, "updateReport", id, err)
	}
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id, callerID uuid.UUID, role string) error {
	if _, err := s.GetOwnedReport(ctx, id, callerID, role); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storageError(ctx, "deleteReport", id, err)
	}
	return nil
}

func (s *ReportService) storageError(ctx context.Context, action string, id uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgReportNotFound)
	}
	slog.ErrorContext(ctx, "report storage error", "action", action, "report_id", id.String(), "error", err)
	return fmt.Errorf("%s: %w", action, err)
}

func applyUpdate(report *models.Report, req *dto.UpdateReportRequest) {
	setIf(&report.Title, req.Title)
	setIf(&report.Description, req.Description)
	setIf(&report.Type, req.Type)
	setIf(&report.Status, req.Status)
	setIf(&report.ScammerName, req.ScammerName)
	setIf(&report.ScammerPhone, req.ScammerPhone)
	setIf(&report.ScammerEmail, req.ScammerEmail)
	setIf(&report.ScammerWebsite, req.ScammerWebsite)
	setIf(&report.ScammerSocialMedia, req.ScammerSocialMedia)
	setIf(&report.Location, req.Location)
	setIf(&report.AmountLost, req.AmountLost)
	setIf(&report.Evidence, req.Evidence)
	setIf(&report.ViewCount, req.ViewCount)
	setIf(&report.Upvotes, req.Upvotes)
	setIf(&report.Downvotes, req.Downvotes)
	setIf(&report.IsTrending, req.IsTrending)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func trimCreate(req *dto.CreateReportRequest) {
	for _, p := range []*string{
		&req.Title, &req.Description, &req.Type, &req.Status,
		&req.ScammerName, &req.ScammerPhone, &req.ScammerEmail,
		&req.ScammerWebsite, &req.ScammerSocialMedia, &req.Location, &req.Evidence,
	} {
		*p = strings.TrimSpace(*p)
	}
}

func trimUpdate(req *dto.UpdateReportRequest) {
	for _, p := range []*string{
		req.Title, req.Description, req.Type, req.Status,
		req.ScammerName, req.ScammerPhone, req.ScammerEmail,
		req.ScammerWebsite, req.ScammerSocialMedia, req.Location, req.Evidence,
	} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}
