package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/database"
	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a user account. The very first account becomes a
// superadmin so a fresh install can be administered; everyone after that
// starts as a viewer until an admin raises their role.
func (h *Handler) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	if _, err := h.Store.UserByEmail(input.Email); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	} else if !errors.Is(err, database.ErrUserNotFound) {
		return err
	}

	count, err := h.Store.UserCount()
	if err != nil {
		return err
	}
	role := models.RoleViewer
	if count == 0 {
		role = models.RoleSuperadmin
	}

	user := models.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  role,
	}
	user.SetPassword(input.Password)
	if err := h.Store.CreateUser(&user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	user, err := h.Store.UserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
		}
		return err
	}
	if err := user.ComparePassword(input.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.Store.User(middlewares.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
