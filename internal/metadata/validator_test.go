package metadata

import (
	"testing"

	"github.com/mvaldes-dev/portfolio-gallery/internal/image"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	file := &image.File{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte("x")}

	t.Run("accepts a complete submission", func(t *testing.T) {
		assert.NoError(t, Validate("A caption", "trips", file, "29/02/2024"))
	})

	t.Run("date is optional", func(t *testing.T) {
		assert.NoError(t, Validate("A caption", "trips", file, ""))
	})

	t.Run("nil file", func(t *testing.T) {
		assert.ErrorIs(t, Validate("A caption", "trips", nil, ""), ErrMissingFile)
	})

	t.Run("blank album", func(t *testing.T) {
		assert.ErrorIs(t, Validate("A caption", "  ", file, ""), ErrMissingAlbum)
	})

	t.Run("blank caption", func(t *testing.T) {
		assert.ErrorIs(t, Validate("   ", "trips", file, ""), ErrMissingCaption)
	})

	t.Run("bad date", func(t *testing.T) {
		assert.ErrorIs(t, Validate("A caption", "trips", file, "31/04/2024"), ErrInvalidDate)
	})
}

func TestValidTakenAt(t *testing.T) {
	valid := []string{
		"",
		"  ",
		"01/01/1900",
		"31/12/2100",
		"29/02/2024",
		"15/08/2026",
		" 15/08/2026 ",
	}
	for _, value := range valid {
		assert.True(t, ValidTakenAt(value), "expected %q to be valid", value)
	}

	invalid := []string{
		"29/02/2023",
		"31/04/2024",
		"00/01/2000",
		"01/00/2000",
		"32/01/2000",
		"01/13/2000",
		"31/12/1899",
		"01/01/2101",
		"1/1/2000",
		"2024/01/01",
		"01-01-2024",
		"01/01/24",
		"aa/bb/cccc",
	}
	for _, value := range invalid {
		assert.False(t, ValidTakenAt(value), "expected %q to be invalid", value)
	}
}

func TestFormatDateInput(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"15", "15"},
		{"158", "15/8"},
		{"1508", "15/08"},
		{"15082", "15/08/2"},
		{"15082026", "15/08/2026"},
		{"150820269999", "15/08/2026"},
		{"15/08/2026", "15/08/2026"},
		{"15a08b2026", "15/08/2026"},
		{"abc", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDateInput(tc.raw), "input %q", tc.raw)
	}
}
