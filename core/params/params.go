package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// QueryParams holds common listing parameters parsed from the query string.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams() QueryParams {
	return QueryParams{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
	}
}

// FromContext parses page_number, page_size and search from the request.
func FromContext(c echo.Context) QueryParams {
	p := NewQueryParams()
	if v, err := strconv.Atoi(c.QueryParam("page_number")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		p.PageSize = v
		if p.PageSize > MaxPageSize {
			p.PageSize = MaxPageSize
		}
	}
	p.Search = c.QueryParam("search")
	return p
}
