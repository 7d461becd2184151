package dto

import "time"

// Envelope is the response shape of every JSON endpoint.
type Envelope struct {
	Data   any           `json:"data"`
	Errors []ErrorDetail `json:"errors,omitempty"`
	Meta   Meta          `json:"meta"`
}

// ErrorDetail is a machine-readable code plus a user-facing message.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Meta accompanies every envelope.
type Meta struct {
	Timestamp  time.Time   `json:"timestamp"`
	Version    string      `json:"version"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page counts.
func NewPagination(page, pageSize, total int) *Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
