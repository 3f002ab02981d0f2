package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page     int
	PageSize int
}

// FromContext extracts and validates page/pageSize from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("pageSize", "10"), DefaultSize)

	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, PageSize: size}
}

// Paginate applies limit/offset to a GORM query and returns the total row count.
func Paginate[T any](tx *gorm.DB, q Query, dest *[]T) (int64, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	if err := tx.Offset(offset).Limit(q.PageSize).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Envelope wraps a page of items in the {list, total, page, pageSize} shape
// the admin console expects.
func Envelope(items interface{}, total int64, q Query) gin.H {
	return gin.H{
		"list":     items,
		"total":    total,
		"page":     q.Page,
		"pageSize": q.PageSize,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
