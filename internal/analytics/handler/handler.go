package handler

import (
	"errors"
	"net/url"

	"github.com/bharatsutharx/radiology-center-2/internal/analytics"
	"github.com/bharatsutharx/radiology-center-2/internal/analytics/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	uc       analytics.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewAnalyticsHandler(uc analytics.UseCase, validate *validator.Validate, log logger.ZapLogger) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/", h.ListStaff)
	r.Get("/comparison", h.GetComparison)
	r.Get("/:name/analytics", h.GetStaffAnalytics)
}

func (h *AnalyticsHandler) ListStaff(c *fiber.Ctx) error {
	names, err := h.uc.GetAllStaffList(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"staff": names})
}

func (h *AnalyticsHandler) GetComparison(c *fiber.Ctx) error {
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.GetStaffComparison(c.UserContext(), q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"comparison": rows})
}

func (h *AnalyticsHandler) GetStaffAnalytics(c *fiber.Ctx) error {
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}

	// fiber leaves path params escaped
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid staff name")
	}

	stats, err := h.uc.GetDetailedStaffAnalytics(c.UserContext(), name, q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(stats)
}

func (h *AnalyticsHandler) rangeQuery(c *fiber.Ctx) (*dto.RangeQuery, error) {
	var q dto.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validate.Struct(&q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return &q, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidDate),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, analytics.ErrStaffMissing):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
