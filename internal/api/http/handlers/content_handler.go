package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/content"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

// ContentHandler serves CMS entries to storefront pages.
type ContentHandler struct {
	fetcher content.Fetcher
	version string
}

// NewContentHandler constructs handler.
func NewContentHandler(fetcher content.Fetcher, version string) *ContentHandler {
	return &ContentHandler{fetcher: fetcher, version: version}
}

// Get handles GET /content/:model/*.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	opts := content.QueryOptions(c.Queries())
	path := "/" + c.Params("*")

	entry, err := h.fetcher.FetchEntry(c.UserContext(), c.Params("model"), path, opts)
	if err != nil {
		return apperrors.NewUpstreamError("cms", err)
	}
	if entry == nil {
		return apperrors.NewNotFound("content", map[string]any{"path": path})
	}
	return writeData(c, http.StatusOK, h.version, fiber.Map{
		"entry":      entry,
		"previewing": content.IsPreviewing(opts),
		"editing":    content.IsEditing(opts),
	}, nil)
}
