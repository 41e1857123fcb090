package product

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
	Name        string          `json:"PName" validate:"required"`
	Description string          `json:"PDescription" validate:"required"`
	Price       decimal.Decimal `json:"PPrice" validate:"gt=0"`
	Quantity    int             `json:"PQuantity" validate:"gte=0"`
	Category    string          `json:"PCategory" validate:"required"`
	Image       string          `json:"PImage" validate:"required"`
}

type updateRequest struct {
	Name        *string          `json:"PName" validate:"omitempty"`
	Description *string          `json:"PDescription" validate:"omitempty"`
	Price       *decimal.Decimal `json:"PPrice" validate:"omitempty,gt=0"`
	Quantity    *int             `json:"PQuantity" validate:"omitempty,gte=0"`
	Category    *string          `json:"PCategory" validate:"omitempty"`
	Image       *string          `json:"PImage" validate:"omitempty"`
}

// Catalog reads stay public so the storefront can browse without a token.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/product", h.list)
	app.Get("/product/:id", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/product", h.create)
	app.Put("/product/:id", h.update)
	app.Delete("/product/:id", h.delete)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Category:    payload.Category,
		Image:       payload.Image,
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(products)
}

func (h *Handler) get(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal(err)
	}
	return c.JSON(p)
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
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Category:    payload.Category,
		Image:       payload.Image,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal(err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal(err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
