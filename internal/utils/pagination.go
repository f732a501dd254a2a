package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/constants"
)

// PaginationParams holds the pagination parameters. The zero value means
// "return everything".
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Enabled reports whether a page window was requested.
func (p PaginationParams) Enabled() bool {
	return p.Limit > 0
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// GetOptionalPaginationParams returns a page window only when the client
// sent page or limit. List endpoints return the full collection otherwise.
func GetOptionalPaginationParams(c *gin.Context) PaginationParams {
	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}
	return GetPaginationParams(c)
}
