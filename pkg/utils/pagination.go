package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 12
	maxPageSize     = 50
)

// BrowseParams represents cursor pagination parameters
type BrowseParams struct {
	Category string
	Cursor   string
	PageSize int
}

// GetBrowseParams extracts browse parameters from the request
func GetBrowseParams(c echo.Context) BrowseParams {
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}

	return BrowseParams{
		Category: c.QueryParam("category"),
		Cursor:   c.QueryParam("cursor"),
		PageSize: pageSize,
	}
}
