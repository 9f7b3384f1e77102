package handler

import (
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc       inventory.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, validate *validator.Validate, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

func (h *InventoryHandler) Register(r fiber.Router) {
	r.Get("/", h.ListItems)
	r.Put("/", h.ReplaceItems)
	r.Post("/", h.AddItem)
	r.Get("/low-stock", h.ListLowStock)
	r.Get("/history", h.GetHistory)
	r.Patch("/:id", h.UpdateItem)
	r.Post("/:id/adjust", h.AdjustStock)
	r.Delete("/:id", h.RemoveItem)
}

func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.GetInventoryData(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *InventoryHandler) ReplaceItems(c *fiber.Ctx) error {
	var req dto.ReplaceInventoryInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items := make([]model.InventoryItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = model.InventoryItem{
			ID:       it.ID,
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			MinStock: it.MinStock,
			Unit:     it.Unit,
		}
	}

	if err := h.uc.SaveInventoryData(c.UserContext(), items); err != nil {
		return toHTTPError(err)
	}
	h.logger.Info("inventory replaced",
		zap.Int("items", len(items)),
		zap.String("by", auth.SessionFrom(c).Username),
	)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InventoryHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddItemInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.AddedBy = auth.SessionFrom(c).Username

	item, err := h.uc.AddInventoryItem(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	var q dto.HistoryFilters
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validate.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	entries, err := h.uc.GetInventoryHistory(c.UserContext(), q.StartDate, q.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"history": entries})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var req dto.UpdateItemInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updates := model.ItemUpdate{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		MinStock: req.MinStock,
		Unit:     req.Unit,
	}
	item, err := h.uc.UpdateInventoryItem(c.UserContext(), int64(id), updates, req.Reason, auth.SessionFrom(c).Username)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var req dto.AdjustStockInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.ID = int64(id)
	req.UpdatedBy = auth.SessionFrom(c).Username

	item, err := h.uc.AdjustStock(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}
	if err := h.uc.RemoveItem(c.UserContext(), int64(id)); err != nil {
		return toHTTPError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrInvalidDate),
		errors.Is(err, inventory.ErrInvalidAction),
		errors.Is(err, inventory.ErrReasonMissing):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrItemNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
