package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	caller, ok := identity.Get(c)
	if !ok {
		return respondError(c, apperr.Unauthorized(""))
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("Invalid request body"))
	}

	report, err := h.reportService.CreateReport(c.UserContext(), caller.ID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	result, err := h.reportService.QueryReports(c.UserContext(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ReportHandler) ListMyReports(c *fiber.Ctx) error {
	caller, ok := identity.Get(c)
	if !ok {
		return respondError(c, apperr.Unauthorized(""))
	}

	result, err := h.reportService.GetUserReports(c.UserContext(), caller.ID, c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.NotFound("Report not found"))
	}

	report, err := h.reportService.GetReportByID(c.UserContext(), reportID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	caller, ok := identity.Get(c)
	if !ok {
		return respondError(c, apperr.Unauthorized(""))
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.NotFound("Report not found"))
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("Invalid request body"))
	}

	ctx := logging.WithAttrs(c.UserContext(), slog.String("report_id", reportID.String()))
	report, err := h.reportService.UpdateReport(ctx, reportID, caller.ID, caller.Role, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	caller, ok := identity.Get(c)
	if !ok {
		return respondError(c, apperr.Unauthorized(""))
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.NotFound("Report not found"))
	}

	ctx := logging.WithAttrs(c.UserContext(), slog.String("report_id", reportID.String()))
	if err := h.reportService.DeleteReport(ctx, reportID, caller.ID, caller.Role); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
