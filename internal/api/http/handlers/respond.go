package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/api/dto"
)

func writeData(c *fiber.Ctx, status int, version string, data any, pagination *dto.Pagination) error {
	return c.Status(status).JSON(dto.Envelope{
		Data: data,
		Meta: dto.Meta{
			Timestamp:  time.Now().UTC(),
			Version:    version,
			Pagination: pagination,
		},
	})
}
