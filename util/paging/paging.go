// Package paging holds the page-request rule shared by every list
// operation: from >= 0, size > 0, page index = floor(from/size).
package paging

import "github.com/roman3350/shareit/util/fault"

func Validate(from, size int) error {
	if from < 0 || size <= 0 {
		return fault.New(fault.InvalidInput, "invalid page request: from must be >= 0 and size > 0")
	}
	return nil
}

// Offset converts a from/size pair into the row offset of the page
// containing "from".
func Offset(from, size int) int {
	page := 0
	if from > 0 {
		page = from / size
	}
	return page * size
}
