// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pagination slices an ordered result sequence into fixed-size
// pages. The caller is responsible for ordering; invalid page numbers clamp
// to the nearest valid page instead of erroring, so a stale bookmark or a
// hand-edited query string still lands on a real page.
package pagination

import "strconv"

// Page is one bounded slice of an ordered sequence plus the navigation
// metadata templates need.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based page number actually served
	PageCount  int
	TotalItems int
	HasPrev    bool
	HasNext    bool
	PrevNumber int // valid only when HasPrev
	NextNumber int // valid only when HasNext
}

// Paginate returns the requested page of items. items must already be
// ordered. number defaults to 1 and clamps into [1, PageCount]; an empty
// sequence yields a single empty page. The input slice is never mutated:
// calling twice with the same arguments returns identical pages.
func Paginate[T any](items []T, pageSize, number int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	if number < 1 {
		number = 1
	}
	if number > pageCount {
		number = pageCount
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := Page[T]{
		Items:      items[start:end],
		Number:     number,
		PageCount:  pageCount,
		TotalItems: total,
		HasPrev:    number > 1,
		HasNext:    number < pageCount,
	}
	if p.HasPrev {
		p.PrevNumber = number - 1
	}
	if p.HasNext {
		p.NextNumber = number + 1
	}
	return p
}

// ParseNumber converts a raw "page" query parameter into a requested page
// number. Anything that is not a positive integer maps to 1; out-of-range
// values are left for Paginate to clamp.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
