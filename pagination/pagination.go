// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pagination - byte-budgeted pagination over an ordered
// sequence
//
// items are packed greedily in order; a page breaks before the item
// that would push it past the byte budget, so page boundaries are a
// pure function of the sequence and the budget
package pagination

import (
	"github.com/Chia-Network/chia-blockchain-sub006/fault"
)

// Page - one page of the sequence as an index range
//
// totals always cover the whole sequence, not only this page
type Page struct {
	Start      int `json:"start"`
	End        int `json:"end"` // exclusive
	TotalPages int `json:"totalPages"`
	TotalBytes int `json:"totalBytes"`
}

// Paginate - slice a sequence of count items into byte-budgeted pages
// and return the requested one
//
// sizeAt reports the byte size of one item; pages are numbered from
// zero; a page past the end is empty but still carries the totals
func Paginate(count int, sizeAt func(i int) int, page int, maxPageSize int) (Page, error) {
	if page < 0 {
		return Page{}, fault.InvalidPage
	}
	if maxPageSize <= 0 {
		return Page{}, fault.PageTooSmall
	}

	result := Page{}

	pageStart := 0
	pageBytes := 0
	currentPage := 0

	for i := 0; i < count; i += 1 {
		size := sizeAt(i)
		if size > maxPageSize {
			return Page{}, fault.PageTooSmall
		}
		result.TotalBytes += size

		if pageBytes+size > maxPageSize {
			if currentPage == page {
				result.Start = pageStart
				result.End = i
			}
			currentPage += 1
			pageStart = i
			pageBytes = 0
		}
		pageBytes += size
	}

	if 0 == count {
		result.TotalPages = 1
		return result, nil
	}

	// the last partial page
	if currentPage == page {
		result.Start = pageStart
		result.End = count
	}
	result.TotalPages = currentPage + 1

	if page >= result.TotalPages {
		result.Start = 0
		result.End = 0
	}
	return result, nil
}
