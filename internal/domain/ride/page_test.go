package ride

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage_Defaults(t *testing.T) {
	p, err := ParsePage("", "", DefaultPageSize, MaxPageSize)
	require.NoError(t, err)

	assert.Equal(t, Page{Index: 0, Size: 25}, p)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 25, p.Limit())
}

func TestParsePage_OffsetArithmetic(t *testing.T) {
	p, err := ParsePage("3", "10", DefaultPageSize, MaxPageSize)
	require.NoError(t, err)

	assert.Equal(t, 30, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestParsePage_ClampsSize(t *testing.T) {
	p, err := ParsePage("1", "1000", DefaultPageSize, 50)
	require.NoError(t, err)

	assert.Equal(t, 50, p.Size)
	assert.Equal(t, 50, p.Offset())
}

func TestParsePage_FallsBackOnNonPositiveConfig(t *testing.T) {
	p, err := ParsePage("", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, p.Size)
}

func TestParsePage_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		index string
		size  string
	}{
		{"negative page", "-1", ""},
		{"non numeric page", "first", ""},
		{"zero size", "", "0"},
		{"negative size", "", "-5"},
		{"fractional size", "", "2.5"},
		{"page overflows offset", "9223372036854775807", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePage(tt.index, tt.size, DefaultPageSize, MaxPageSize)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestParsePage_LargeIndexIsValid(t *testing.T) {
	p, err := ParsePage("100000000", "", DefaultPageSize, MaxPageSize)
	require.NoError(t, err)
	assert.Equal(t, 100000000*DefaultPageSize, p.Offset())

	p, err = ParsePage("9999999999", "10", DefaultPageSize, MaxPageSize)
	require.NoError(t, err)
	assert.Equal(t, 99999999990, p.Offset())
}

func TestPage_Validate(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		valid bool
	}{
		{"first page", Page{Index: 0, Size: 10}, true},
		{"far page", Page{Index: 1 << 40, Size: 100}, true},
		{"zero size", Page{Index: 0, Size: 0}, false},
		{"negative size", Page{Index: 0, Size: -1}, false},
		{"negative index", Page{Index: -1, Size: 10}, false},
		{"overflowing offset", Page{Index: math.MaxInt, Size: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			}
		})
	}
}
