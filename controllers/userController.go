package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/database"
	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=viewer staff admin superadmin"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=viewer staff admin superadmin"`
}

type UpdatePasswordInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.Store.Users()
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var input CreateUserInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	if _, err := h.Store.UserByEmail(input.Email); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	} else if !errors.Is(err, database.ErrUserNotFound) {
		return err
	}

	role := models.Role(input.Role)
	if input.Role == "" {
		role = models.RoleViewer
	}
	// Only a superadmin may mint another superadmin.
	if role == models.RoleSuperadmin && !middlewares.CurrentRole(c).HasAtLeast(models.RoleSuperadmin) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}

	user := models.User{Name: input.Name, Email: input.Email, Role: role}
	user.SetPassword(input.Password)
	if err := h.Store.CreateUser(&user); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handler) UpdateUserRole(c *fiber.Ctx) error {
	var input UpdateRoleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	role := models.Role(input.Role)
	if role == models.RoleSuperadmin && !middlewares.CurrentRole(c).HasAtLeast(models.RoleSuperadmin) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}

	user, err := h.Store.UpdateUserRole(c.Params("id"), role)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) UpdateUserPassword(c *fiber.Ctx) error {
	var input UpdatePasswordInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if err := h.Store.UpdateUserPassword(c.Params("id"), input.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == middlewares.CurrentUserID(c) {
		return fiber.NewError(fiber.StatusBadRequest, "cannot delete own account")
	}
	if err := h.Store.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
