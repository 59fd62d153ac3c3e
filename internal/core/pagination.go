// AngelaMos | 2026
// pagination.go

package core

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const DefaultRecordsNumber = 10

var ErrInvalidPage = errors.New("invalid page")

// Pagination selects one page of a result using the page/records_number
// query convention. Pages are 1-based.
type Pagination struct {
	Page    int
	PerPage int
}

func ParsePagination(values url.Values, defaultPerPage int) (Pagination, error) {
	p := Pagination{Page: 1, PerPage: defaultPerPage}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("page %q is not an integer: %w", raw, ErrInvalidPage)
		}
		p.Page = page
	}

	if raw := values.Get("records_number"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf(
				"records_number %q is not an integer: %w",
				raw,
				ErrInvalidPage,
			)
		}
		p.PerPage = perPage
	}

	return p, nil
}

// Window validates the page against total items and returns the slice
// bounds. An empty result still has one (empty) first page.
func (p Pagination) Window(total int) (offset, limit int, err error) {
	if p.PerPage < 1 {
		return 0, 0, fmt.Errorf("records_number must be positive: %w", ErrInvalidPage)
	}

	if p.Page < 1 {
		return 0, 0, fmt.Errorf("that page number is less than 1: %w", ErrInvalidPage)
	}

	pages := (total + p.PerPage - 1) / p.PerPage
	if pages == 0 {
		pages = 1
	}

	if p.Page > pages {
		return 0, 0, fmt.Errorf("that page contains no results: %w", ErrInvalidPage)
	}

	return (p.Page - 1) * p.PerPage, p.PerPage, nil
}

func Paginate[T any](items []T, p Pagination) ([]T, error) {
	offset, limit, err := p.Window(len(items))
	if err != nil {
		return nil, err
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], nil
}
