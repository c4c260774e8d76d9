package server

import (
	"errors"

	"github.com/Jins0l/ai-board-project/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPage        = 1
	defaultLimit       = 10
	maxPaginationLimit = 100
)

// parsePagination extracts page and limit query parameters. Invalid or
// non-numeric values silently fall back to the defaults; limit values outside
// [1, 100] fall back to the default rather than being rejected.
func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 || limit > maxPaginationLimit {
		limit = defaultLimit
	}

	return page, limit
}

// totalPages computes ceil(total/limit); zero rows means zero pages.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// parseID extracts a route parameter by name as a positive integer.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}
