package controllers

import (
	"github.com/gofiber/fiber/v2"

	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

type CreateClientInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (h *Handler) CreateClient(c *fiber.Ctx) error {
	var input CreateClientInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	client := models.Client{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Notes:   input.Notes,
	}
	if err := h.Store.CreateClient(&client); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *Handler) GetClients(c *fiber.Ctx) error {
	clients, err := h.Store.Clients()
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

func (h *Handler) GetClient(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	client, err := h.Store.Client(id)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

// DeleteClient removes a client. Without ?force=true the call fails with 409
// when invoices exist; the cascading variant is reserved for admins.
func (h *Handler) DeleteClient(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	force := c.Query("force") == "true"
	if force && !middlewares.CurrentRole(c).HasAtLeast(models.RoleAdmin) {
		return fiber.NewError(fiber.StatusForbidden, "cascading delete requires admin")
	}

	if err := h.Store.DeleteClient(id, force); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
