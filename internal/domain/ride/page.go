package ride

import (
	"math"
	"strconv"
)

const (
	// DefaultPageSize applies when a listing request does not name a size
	DefaultPageSize = 25
	// MaxPageSize bounds a single listing window
	MaxPageSize = 100
)

// Page selects a window of rides for listing
type Page struct {
	Index int
	Size  int
}

// Offset returns the number of rows skipped before the window starts
func (p Page) Offset() int {
	return p.Index * p.Size
}

// Limit returns the maximum number of rows in the window
func (p Page) Limit() int {
	return p.Size
}

// ParsePage builds a Page from raw query values. Empty values fall back to
// index 0 and defaultSize; sizes above maxSize are clamped.
func ParsePage(index, size string, defaultSize, maxSize int) (Page, error) {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}

	p := Page{Index: 0, Size: defaultSize}

	if index != "" {
		n, err := strconv.Atoi(index)
		if err != nil || n < 0 {
			return Page{}, &ValidationError{Field: "page", Message: "Page must be a non negative integer"}
		}
		p.Index = n
	}

	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return Page{}, &ValidationError{Field: "pageSize", Message: "Page size must be a positive integer"}
		}
		p.Size = n
	}

	if p.Size > maxSize {
		p.Size = maxSize
	}
	if err := p.Validate(); err != nil {
		return Page{}, err
	}

	return p, nil
}

// Validate reports a negative index, a non-positive size, or an offset that
// does not fit in an int. A window past the stored rides is valid and lists
// nothing.
func (p Page) Validate() error {
	if p.Index < 0 {
		return &ValidationError{Field: "page", Message: "Page must be a non negative integer"}
	}
	if p.Size <= 0 {
		return &ValidationError{Field: "pageSize", Message: "Page size must be a positive integer"}
	}
	if p.Index > math.MaxInt/p.Size {
		return &ValidationError{Field: "page", Message: "Page is out of range"}
	}
	return nil
}
