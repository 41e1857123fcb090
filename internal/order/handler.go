package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/shoplane/shop-backend/internal/apperr"
	"github.com/shoplane/shop-backend/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name     string          `json:"OName" validate:"required"`
	Price    decimal.Decimal `json:"OPrice" validate:"gt=0"`
	Quantity int             `json:"OQuantity" validate:"gt=0"`
	Category string          `json:"OCategory" validate:"required"`
}

type updateRequest struct {
	Name     *string          `json:"OName" validate:"omitempty"`
	Price    *decimal.Decimal `json:"OPrice" validate:"omitempty,gt=0"`
	Quantity *int             `json:"OQuantity" validate:"omitempty,gt=0"`
	Category *string          `json:"OCategory" validate:"omitempty"`
}

// Order records expose purchase history, so every route requires a token.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/order", h.create)
	app.Get("/order", h.list)
	app.Get("/order/:id", h.get)
	app.Put("/order/:id", h.update)
	app.Delete("/order/:id", h.delete)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	created, err := h.service.Create(Order{
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Category: payload.Category,
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	o, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order")
		}
		return apperr.Internal(err)
	}
	return c.JSON(o)
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Params("id"), Update{
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Category: payload.Category,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order")
		}
		return apperr.Internal(err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order")
		}
		return apperr.Internal(err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
