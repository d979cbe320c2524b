/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"fmt"
	"strconv"
	"strings"
)

// Page window of query results.
//
// Pages are 1-based, page 0 is treated as the first page.
//
// # Implements:
//   - IExpression
type Pagination struct {
	page       int
	numPerPage int
}

func NewPagination() *Pagination {
	return &Pagination{page: DefaultPage}
}

func (p *Pagination) Page() int { return p.page }

func (p *Pagination) SetPage(page int) error {
	if page < 0 {
		return ErrInvalidArgument("page must be positive, got %d", page)
	}
	p.page = page
	return nil
}

// Returns page size, zero means no limit
func (p *Pagination) NumPerPage() int { return p.numPerPage }

func (p *Pagination) SetNumPerPage(num int) error {
	if num < 0 {
		return ErrInvalidArgument("number per page must be positive, got %d", num)
	}
	p.numPerPage = num
	return nil
}

// Returns zero-based offset of the first row of page
func (p *Pagination) First() int {
	return max(p.page-1, 0) * p.numPerPage
}

// Returns zero-based offset of the row after the last row of page
func (p *Pagination) Last() int {
	return p.First() + p.numPerPage
}

// Pagination without page size does not limit results
func (p *Pagination) Active() bool { return p.numPerPage > 0 }

// Configures pagination from data map. Known keys: page, num_per_page
func (p *Pagination) SetData(data map[string]any) error {
	for k, v := range data {
		n, err := pageInt(v)
		if err != nil {
			return ErrInvalidArgument("pagination %s: %v", k, err)
		}
		switch normalizeKey(k) {
		case "page":
			err = p.SetPage(n)
		case "numperpage", "limit":
			err = p.SetNumPerPage(n)
		default:
			return ErrInvalidArgument("unknown pagination key «%s»", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Renders LIMIT clause, empty if pagination is not active
func (p *Pagination) SQL(d Dialect) (string, error) {
	if !p.Active() {
		return "", nil
	}
	if d.IsPostgres() {
		return fmt.Sprintf("LIMIT %d OFFSET %d", p.numPerPage, p.First()), nil
	}
	return fmt.Sprintf("LIMIT %d, %d", p.First(), p.numPerPage), nil
}

// Returns page window of n rows as [from, to) slice bounds
func (p *Pagination) Bounds(n int) (from, to int) {
	if !p.Active() {
		return 0, n
	}
	from = min(p.First(), n)
	to = min(p.Last(), n)
	return from, to
}

func pageInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%v is not integer", val)
		}
		return int(val), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(val))
	}
	return 0, fmt.Errorf("%v (%T) is not integer", v, v)
}
