package handler

import (
	"bytes"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/export"
	"github.com/bharatsutharx/radiology-center-2/internal/export/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExportHandler struct {
	uc         export.UseCase
	validate   *validator.Validate
	logger     logger.ZapLogger
	centerName string
	now        func() time.Time
}

func NewExportHandler(uc export.UseCase, validate *validator.Validate, log logger.ZapLogger, centerName string) *ExportHandler {
	return &ExportHandler{
		uc:         uc,
		validate:   validate,
		logger:     log,
		centerName: centerName,
		now:        time.Now,
	}
}

func (h *ExportHandler) Register(r fiber.Router) {
	r.Get("/attendance", h.Attendance)
	r.Get("/inventory", h.Inventory)
	r.Get("/staff/:name", h.StaffPerformance)
}

func (h *ExportHandler) query(c *fiber.Ctx) (*dto.ReportQuery, export.Format, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validate.Struct(&q); err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	f, err := export.ParseFormat(q.Format)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return &q, f, nil
}

func (h *ExportHandler) Attendance(c *fiber.Ctx) error {
	q, f, err := h.query(c)
	if err != nil {
		return err
	}
	report, err := h.uc.AttendanceReport(c.UserContext(), q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return h.send(c, report, f)
}

func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	_, f, err := h.query(c)
	if err != nil {
		return err
	}
	report, err := h.uc.InventoryReport(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return h.send(c, report, f)
}

func (h *ExportHandler) StaffPerformance(c *fiber.Ctx) error {
	q, f, err := h.query(c)
	if err != nil {
		return err
	}
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid staff name")
	}
	report, err := h.uc.StaffPerformanceReport(c.UserContext(), name, q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return h.send(c, report, f)
}

func (h *ExportHandler) send(c *fiber.Ctx, report *export.Report, f export.Format) error {
	var buf bytes.Buffer
	if err := export.Render(&buf, report, f, h.centerName, h.now()); err != nil {
		h.logger.Error("failed to render report",
			zap.String("report", report.Basename),
			zap.String("format", string(f)),
			zap.Error(err),
		)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
	}

	h.logger.Info("report exported",
		zap.String("file", report.Filename(f)),
		zap.Int("rows", len(report.Rows)),
		zap.String("by", auth.SessionFrom(c).Username),
	)
	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(report.Filename(f)))
	return c.Send(buf.Bytes())
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, export.ErrInvalidDate),
		errors.Is(err, export.ErrInvalidRange),
		errors.Is(err, export.ErrStaffMissing):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
