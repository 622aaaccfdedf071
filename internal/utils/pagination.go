// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page     int
	Limit    int
	Keyword  string
	Category string
}

// Offset is the number of rows before the page. ok is false when the offset
// does not fit in an int; such a page is past the end of any result.
func (p PaginationParams) Offset() (offset int, ok bool) {
	if p.Page < 1 || p.Limit < 1 {
		return 0, true
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return 0, false
	}
	return (p.Page - 1) * p.Limit, true
}

// GetPaginationParams reads keyword, pageNumber and category. Page numbers
// below one, or that do not parse, become one.
func GetPaginationParams(c *gin.Context, limit int) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return PaginationParams{
		Page:     page,
		Limit:    limit,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Category: strings.TrimSpace(c.Query("category")),
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
