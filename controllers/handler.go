package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/database"
)

// Handler holds the injected collaborators for all HTTP controllers. There
// are no package-level database handles.
type Handler struct {
	Store        *database.Store
	BaseCurrency string
}

func New(store *database.Store, baseCurrency string) *Handler {
	return &Handler{Store: store, BaseCurrency: baseCurrency}
}

// idParam parses a positive integer path parameter, rejecting anything that
// is not ^\d+$ before any query runs.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
