package customer

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shoplane/shop-backend/internal/apperr"
	"github.com/shoplane/shop-backend/internal/upload"
	"github.com/shoplane/shop-backend/internal/validation"
)

type Handler struct {
	service *Service
	uploads *upload.Store
}

func NewHandler(service *Service, uploads *upload.Store) *Handler {
	return &Handler{service: service, uploads: uploads}
}

type registerRequest struct {
	Name     string `json:"CusName" form:"CusName" validate:"required,min=3"`
	Email    string `json:"CusEmail" form:"CusEmail" validate:"required,email"`
	Password string `json:"CusPassword" form:"CusPassword" validate:"required,password"`
	Phone    string `json:"CusPhone" form:"CusPhone" validate:"required,len=10,numeric"`
	Address  string `json:"CusAddress" form:"CusAddress" validate:"required"`
	Age      int    `json:"CusAge" form:"CusAge" validate:"required,gte=18,lte=100"`
	Gender   string `json:"CusGender" form:"CusGender" validate:"required,oneof=Male Female Other"`
}

type loginRequest struct {
	Email    string `json:"CusEmail" form:"CusEmail" validate:"required,email"`
	Password string `json:"CusPassword" form:"CusPassword" validate:"required"`
}

// updateRequest deliberately has no CusID field: the business ID is
// immutable and anything the client sends for it is ignored.
type updateRequest struct {
	Name    *string `json:"CusName" form:"CusName" validate:"omitempty,min=3"`
	Email   *string `json:"CusEmail" form:"CusEmail" validate:"omitempty,email"`
	Phone   *string `json:"CusPhone" form:"CusPhone" validate:"omitempty,len=10,numeric"`
	Address *string `json:"CusAddress" form:"CusAddress" validate:"omitempty"`
	Age     *int    `json:"CusAge" form:"CusAge" validate:"omitempty,gte=18,lte=100"`
	Gender  *string `json:"CusGender" form:"CusGender" validate:"omitempty,oneof=Male Female Other"`
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/customer/register", h.register)
	app.Post("/customer/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/customer", h.list)
	app.Get("/customer/:id", h.get)
	app.Put("/customer/:id", h.update)
	app.Delete("/customer/:id", h.delete)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	// the image is only written to disk once the payload itself is valid;
	// every later failure has to remove it again
	profile := ""
	if fh, err := c.FormFile("CusProfile"); err == nil && fh != nil {
		saved, err := h.uploads.SaveProfileImage(fh)
		if err != nil {
			if errors.Is(err, upload.ErrTooLarge) || errors.Is(err, upload.ErrUnsupportedType) {
				return apperr.BadRequest(err.Error())
			}
			return apperr.Internal(err)
		}
		profile = saved
	}

	created, token, err := h.service.Register(Customer{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Age:      payload.Age,
		Gender:   payload.Gender,
		Profile:  profile,
	})
	if err != nil {
		h.uploads.Remove(profile)
		if errors.Is(err, ErrEmailExists) {
			return apperr.Conflict("Email already exists")
		}
		return apperr.Internal(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"customer": created,
		"token":    token,
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	cust, token, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return apperr.Unauthorized()
		}
		return apperr.Internal(err)
	}

	return c.JSON(fiber.Map{
		"CusID":    cust.ID,
		"CusName":  cust.Name,
		"CusEmail": cust.Email,
		"token":    token,
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	customers, err := h.service.List()
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(customers)
}

func (h *Handler) get(c *fiber.Ctx) error {
	cust, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Customer")
		}
		return apperr.Internal(err)
	}
	return c.JSON(cust)
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest("Could not parse request body")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	upd := Update{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
		Age:     payload.Age,
		Gender:  payload.Gender,
	}

	newProfile := ""
	if fh, err := c.FormFile("CusProfile"); err == nil && fh != nil {
		saved, err := h.uploads.SaveProfileImage(fh)
		if err != nil {
			if errors.Is(err, upload.ErrTooLarge) || errors.Is(err, upload.ErrUnsupportedType) {
				return apperr.BadRequest(err.Error())
			}
			return apperr.Internal(err)
		}
		newProfile = saved
		upd.Profile = &newProfile
	}

	updated, previousProfile, err := h.service.Update(c.Params("id"), upd)
	if err != nil {
		h.uploads.Remove(newProfile)
		switch {
		case errors.Is(err, ErrNotFound):
			return apperr.NotFound("Customer")
		case errors.Is(err, ErrEmailExists):
			return apperr.Conflict("Email already exists")
		}
		return apperr.Internal(err)
	}

	if newProfile != "" && previousProfile != newProfile {
		h.uploads.Remove(previousProfile)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	deleted, err := h.service.Delete(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Customer")
		}
		return apperr.Internal(err)
	}

	h.uploads.Remove(deleted.Profile)
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
