package metadata

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mvaldes-dev/portfolio-gallery/internal/image"
)

var (
	ErrMissingFile    = errors.New("missing file")
	ErrMissingAlbum   = errors.New("missing album")
	ErrMissingCaption = errors.New("missing caption")
	ErrInvalidDate    = errors.New("invalid date, use DD/MM/YYYY")
)

var takenAtPattern = regexp.MustCompile(`^([0-3]\d)/([01]\d)/(\d{4})$`)

// Validate checks the auxiliary upload fields before any network call is
// attempted. takenAt is optional; when present it must be a real calendar
// date in DD/MM/YYYY form.
func Validate(caption, albumSlug string, file *image.File, takenAt string) error {
	if file == nil {
		return ErrMissingFile
	}
	if strings.TrimSpace(albumSlug) == "" {
		return ErrMissingAlbum
	}
	if strings.TrimSpace(caption) == "" {
		return ErrMissingCaption
	}
	if !ValidTakenAt(takenAt) {
		return ErrInvalidDate
	}
	return nil
}

// ValidTakenAt reports whether value is empty or a zero-padded DD/MM/YYYY
// date that exists on the calendar, with a year in [1900, 2100].
func ValidTakenAt(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}

	match := takenAtPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	if year < 1900 || year > 2100 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}

	// time.Date normalizes overflow (31/04 becomes 01/05), so a round trip
	// detects days that don't exist in the given month.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && date.Month() == time.Month(month) && date.Day() == day
}

// FormatDateInput live-reformats free-typed digits into DD/MM/YYYY,
// inserting separators progressively and capping input at 8 digits. It is a
// typing affordance, not a validation gate.
func FormatDateInput(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 8 {
				break
			}
		}
	}

	s := digits.String()
	switch {
	case len(s) <= 2:
		return s
	case len(s) <= 4:
		return s[:2] + "/" + s[2:]
	default:
		return s[:2] + "/" + s[2:4] + "/" + s[4:]
	}
}
