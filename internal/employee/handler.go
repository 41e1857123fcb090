package employee

import (
	"errors"

	"github.com/gofiber/fiber/v2"

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
	Name     string `json:"EmpName" validate:"required,min=3"`
	Email    string `json:"EmpEmail" validate:"required,email"`
	Password string `json:"EmpPassword" validate:"required,password"`
	Phone    string `json:"EmpPhone" validate:"required,len=10,numeric"`
	Address  string `json:"EmpAddress" validate:"required"`
	Age      int    `json:"EmpAge" validate:"required,gte=18,lte=100"`
	Gender   string `json:"EmpGender" validate:"required,oneof=Male Female Other"`
	Profile  string `json:"EmpProfile" validate:"omitempty"`
}

type updateRequest struct {
	Name    *string `json:"EmpName" validate:"omitempty,min=3"`
	Email   *string `json:"EmpEmail" validate:"omitempty,email"`
	Phone   *string `json:"EmpPhone" validate:"omitempty,len=10,numeric"`
	Address *string `json:"EmpAddress" validate:"omitempty"`
	Age     *int    `json:"EmpAge" validate:"omitempty,gte=18,lte=100"`
	Gender  *string `json:"EmpGender" validate:"omitempty,oneof=Male Female Other"`
	Profile *string `json:"EmpProfile" validate:"omitempty"`
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/emp", h.create)
	app.Get("/emp", h.list)
	app.Get("/emp/:id", h.get)
	app.Put("/emp/:id", h.update)
	app.Delete("/emp/:id", h.delete)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	created, err := h.service.Create(Employee{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Age:      payload.Age,
		Gender:   payload.Gender,
		Profile:  payload.Profile,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return apperr.Conflict("Email already exists")
		}
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	employees, err := h.service.List()
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(employees)
}

func (h *Handler) get(c *fiber.Ctx) error {
	emp, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Employee")
		}
		return apperr.Internal(err)
	}
	return c.JSON(emp)
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
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
		Age:     payload.Age,
		Gender:  payload.Gender,
		Profile: payload.Profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return apperr.NotFound("Employee")
		case errors.Is(err, ErrEmailExists):
			return apperr.Conflict("Email already exists")
		}
		return apperr.Internal(err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Employee")
		}
		return apperr.Internal(err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
