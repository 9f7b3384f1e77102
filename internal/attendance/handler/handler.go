package handler

import (
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/attendance"
	"github.com/bharatsutharx/radiology-center-2/internal/attendance/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	uc       attendance.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewAttendanceHandler(uc attendance.UseCase, validate *validator.Validate, log logger.ZapLogger) *AttendanceHandler {
	return &AttendanceHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

func (h *AttendanceHandler) Register(r fiber.Router) {
	r.Get("/", h.GetAllAttendance)
	r.Get("/analytics", h.GetAttendanceAnalytics)
	r.Get("/stats/:month", h.GetMonthlyStats)
	r.Get("/:date", h.GetAttendance)
	r.Put("/:date", h.SaveAttendance)
	r.Post("/:date/staff", h.AddStaff)
	r.Put("/:date/records/:id", h.SaveRecord)
	r.Delete("/:date/records/:id", h.DeleteRecord)
}

func (h *AttendanceHandler) GetAllAttendance(c *fiber.Ctx) error {
	data, err := h.uc.GetAllAttendanceData(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"dates": data.Dates(), "data": data})
}

func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	records, err := h.uc.GetAttendanceData(c.UserContext(), c.Params("date"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"date": c.Params("date"), "records": records})
}

func (h *AttendanceHandler) SaveAttendance(c *fiber.Ctx) error {
	var req dto.RosterInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	date := c.Params("date")
	records := make([]model.AttendanceRecord, len(req.Records))
	for i, r := range req.Records {
		records[i] = model.AttendanceRecord{
			ID:       r.ID,
			Name:     r.Name,
			Role:     r.Role,
			Date:     date,
			CheckIn:  r.CheckIn,
			CheckOut: r.CheckOut,
			Status:   model.AttendanceStatus(r.Status),
			Hours:    r.Hours,
		}
	}

	if err := h.uc.SaveAttendanceData(c.UserContext(), date, records); err != nil {
		return toHTTPError(err)
	}

	h.logger.Info("attendance roster saved",
		zap.String("date", date),
		zap.Int("records", len(records)),
		zap.String("by", auth.SessionFrom(c).Username),
	)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AttendanceHandler) AddStaff(c *fiber.Ctx) error {
	var req dto.AddStaffInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Date = c.Params("date")
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.uc.AddStaff(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *AttendanceHandler) SaveRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}

	var req dto.SaveRecordInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Date = c.Params("date")
	req.ID = int64(id)
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.uc.SaveRecord(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(rec)
}

func (h *AttendanceHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}
	if err := h.uc.DeleteRecord(c.UserContext(), c.Params("date"), int64(id)); err != nil {
		return toHTTPError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AttendanceHandler) GetAttendanceAnalytics(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validate.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.uc.GetAttendanceAnalytics(c.UserContext(), q.Staff, q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(stats)
}

func (h *AttendanceHandler) GetMonthlyStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetMonthlyAttendanceStats(c.UserContext(), c.Params("month"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(stats)
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidMonth),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, attendance.ErrStaffExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
