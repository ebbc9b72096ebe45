// Package format holds the display and validation helpers shared by every view.
package format

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidURL        = errors.New("Please enter a valid URL")
	ErrInvalidAlias      = errors.New("Custom alias must be 4-20 characters: letters, numbers, dashes, and underscores only")
	ErrInvalidExpiration = errors.New("Expiration must be between 1 and 365 days")
)

var aliasPattern = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Layouts accepted by FormatDate. Naive timestamps are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// AbsoluteDateLayout is used once a timestamp is a week or more away.
const AbsoluteDateLayout = "Jan 2, 2006"

// FormatNumber abbreviates large counts: 999 -> "999", 1500 -> "1.5K", 1000000 -> "1M"
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return abbreviate(n, 1_000_000) + "M"
	case n >= 1_000:
		return abbreviate(n, 1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// abbreviate divides n by unit, keeping one fractional digit (half-up) unless the quotient is integral
func abbreviate(n, unit int64) string {
	if n%unit == 0 {
		return strconv.FormatInt(n/unit, 10)
	}
	tenth := unit / 10
	tenths := (n + tenth/2) / tenth
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// FormatDate renders a timestamp relative to now. Input that is not a timestamp is returned as is.
func FormatDate(value string, now time.Time) string {
	t, ok := ParseTime(value)
	if !ok {
		return value
	}
	return FormatTime(t, now)
}

// ParseTime reads the timestamp formats emitted by the backend
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime is FormatDate for an already parsed time
func FormatTime(t, now time.Time) string {
	diff := now.Sub(t)
	future := diff < 0
	if future {
		diff = -diff
	}

	seconds := int64(diff / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	if seconds < 5 {
		return "just now"
	}

	if future {
		switch {
		case days >= 7:
			return t.Format(AbsoluteDateLayout)
		case days >= 1:
			return "in " + plural(days, "day")
		case hours >= 1:
			return "in " + plural(hours, "hour")
		default:
			return "soon"
		}
	}

	switch {
	case seconds < 60:
		return plural(seconds, "second") + " ago"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days < 7:
		return plural(days, "day") + " ago"
	default:
		return t.Format(AbsoluteDateLayout)
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}

// IsValidURL reports whether s is an absolute http or https URL
func IsValidURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// ValidateAlias checks an optional custom alias. An empty alias is valid.
func ValidateAlias(alias string) error {
	if alias == "" {
		return nil
	}
	if len(alias) < 4 || len(alias) > 20 || !aliasPattern.MatchString(alias) {
		return ErrInvalidAlias
	}
	return nil
}

// ValidateExpirationDays checks an optional expiration. Zero means the link never expires.
func ValidateExpirationDays(days int) error {
	if days == 0 {
		return nil
	}
	if days < 1 || days > 365 {
		return ErrInvalidExpiration
	}
	return nil
}
