package handler

import (
	"errors"
	"strconv"

	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/backup"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BackupHandler struct {
	uc     backup.UseCase
	logger logger.ZapLogger
}

func NewBackupHandler(uc backup.UseCase, log logger.ZapLogger) *BackupHandler {
	return &BackupHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *BackupHandler) Register(r fiber.Router) {
	r.Get("/export", h.Export)
	r.Post("/import", h.Import)
	r.Delete("/", h.Clear)
	r.Get("/usage", h.Usage)
	r.Get("/inspect", h.Inspect)
}

func (h *BackupHandler) Export(c *fiber.Ctx) error {
	b, err := h.uc.Export(c.UserContext(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return toHTTPError(err)
	}
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(b.Filename()))
	return c.JSON(b)
}

func (h *BackupHandler) Import(c *fiber.Ctx) error {
	res, err := h.uc.Import(c.UserContext(), c.Body())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(res)
}

func (h *BackupHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	h.logger.Warn("local data cleared", zap.String("by", auth.SessionFrom(c).Username))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BackupHandler) Usage(c *fiber.Ctx) error {
	u, err := h.uc.Usage(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(u)
}

func (h *BackupHandler) Inspect(c *fiber.Ctx) error {
	in, err := h.uc.Inspect(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(in)
}

func toHTTPError(err error) error {
	if errors.Is(err, backup.ErrInvalidBackup) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
