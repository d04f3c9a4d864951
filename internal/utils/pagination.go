package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NewPaginationParams derives the offset for a 1-based page. An offset that
// would overflow int saturates at math.MaxInt, which lies past any real table.
func NewPaginationParams(page, limit int) PaginationParams {
	offset := 0
	if page > 1 && limit > 0 {
		if page-1 > math.MaxInt/limit {
			offset = math.MaxInt
		} else {
			offset = (page - 1) * limit
		}
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// TotalPages returns ceil(total / limit).
func (p PaginationParams) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		pages++
	}
	return pages
}

// ParamError reports a query parameter that could not be accepted.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// ListQuery is the typed form of the task listing query string.
type ListQuery struct {
	Status     string
	Sort       string
	Pagination PaginationParams
}

// ParseListQuery reads status, sort, page and limit from the request. Missing
// values take their defaults; present values must parse and be in range.
func ParseListQuery(c *gin.Context) (ListQuery, error) {
	page, err := parsePositiveInt(c, "page", constants.DefaultPage)
	if err != nil {
		return ListQuery{}, err
	}

	limit, err := parsePositiveInt(c, "limit", constants.DefaultPageSize)
	if err != nil {
		return ListQuery{}, err
	}
	if limit > constants.MaxPageSize {
		return ListQuery{}, &ParamError{
			Param:  "limit",
			Reason: fmt.Sprintf("must not exceed %d", constants.MaxPageSize),
		}
	}

	sort := strings.TrimSpace(c.Query("sort"))
	if sort == "" {
		sort = constants.DefaultSort
	}

	return ListQuery{
		Status:     strings.TrimSpace(c.Query("status")),
		Sort:       sort,
		Pagination: NewPaginationParams(page, limit),
	}, nil
}

func parsePositiveInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParamError{Param: name, Reason: "must be an integer"}
	}
	if v < constants.MinPageSize {
		return 0, &ParamError{Param: name, Reason: fmt.Sprintf("must be at least %d", constants.MinPageSize)}
	}
	return v, nil
}
