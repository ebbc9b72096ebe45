package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "zero", n: 0, want: "0"},
		{name: "small", n: 500, want: "500"},
		{name: "largest plain", n: 999, want: "999"},
		{name: "one thousand", n: 1000, want: "1K"},
		{name: "fractional thousands", n: 1500, want: "1.5K"},
		{name: "ten thousand", n: 10000, want: "10K"},
		{name: "half-up rounding", n: 1250, want: "1.3K"},
		{name: "rounds below half down", n: 1249, want: "1.2K"},
		{name: "non-integral rounding to whole keeps digit", n: 1999, want: "2.0K"},
		{name: "one million", n: 1_000_000, want: "1M"},
		{name: "fractional millions", n: 2_500_000, want: "2.5M"},
		{name: "large millions", n: 12_340_000, want: "12.3M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatNumberRanges(t *testing.T) {
	for n := int64(0); n <= 999; n++ {
		assert.NotContains(t, FormatNumber(n), "K")
	}
	for _, n := range []int64{1000, 45_678, 999_000} {
		assert.True(t, strings.HasSuffix(FormatNumber(n), "K"), n)
	}
	for _, n := range []int64{1_000_000, 7_777_777, 1_000_000_000} {
		assert.True(t, strings.HasSuffix(FormatNumber(n), "M"), n)
	}
}

func TestFormatDatePast(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "same instant", ago: 0, want: "just now"},
		{name: "under five seconds", ago: 4 * time.Second, want: "just now"},
		{name: "thirty seconds", ago: 30 * time.Second, want: "30 seconds ago"},
		{name: "one minute", ago: time.Minute, want: "1 minute ago"},
		{name: "minutes", ago: 59 * time.Minute, want: "59 minutes ago"},
		{name: "one hour", ago: time.Hour, want: "1 hour ago"},
		{name: "hours", ago: 23 * time.Hour, want: "23 hours ago"},
		{name: "one day", ago: 24 * time.Hour, want: "1 day ago"},
		{name: "six days", ago: 6 * 24 * time.Hour, want: "6 days ago"},
		{name: "a week", ago: 7 * 24 * time.Hour, want: "Mar 3, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := now.Add(-tt.ago).Format(time.RFC3339)
			assert.Equal(t, tt.want, FormatDate(value, now))
		})
	}
}

func TestFormatDateFuture(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		ahead time.Duration
		want  string
	}{
		{name: "under five seconds", ahead: 3 * time.Second, want: "just now"},
		{name: "minutes", ahead: 10 * time.Minute, want: "soon"},
		{name: "one hour", ahead: time.Hour, want: "in 1 hour"},
		{name: "hours", ahead: 5 * time.Hour, want: "in 5 hours"},
		{name: "one day", ahead: 24 * time.Hour, want: "in 1 day"},
		{name: "days", ahead: 3 * 24 * time.Hour, want: "in 3 days"},
		{name: "a month", ahead: 30 * 24 * time.Hour, want: "Apr 9, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := now.Add(tt.ahead).Format(time.RFC3339)
			assert.Equal(t, tt.want, FormatDate(value, now))
		})
	}
}

func TestFormatDateInputs(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "not a date", FormatDate("not a date", now))
	assert.Equal(t, "", FormatDate("", now))
	// backend emits naive ISO timestamps with microseconds
	assert.Equal(t, "2 hours ago", FormatDate("2024-03-10T09:59:59.123456", now))
	assert.Equal(t, "Jan 15, 2023", FormatDate("2023-01-15T12:00:00Z", now))

	first := FormatDate("2024-03-10T11:59:30Z", now)
	assert.Equal(t, first, FormatDate("2024-03-10T11:59:30Z", now))
	assert.Equal(t, "30 seconds ago", first)
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "http://example.com", want: true},
		{url: "https://example.com", want: true},
		{url: "https://example.com/path?query=1", want: true},
		{url: "HTTPS://EXAMPLE.COM", want: true},
		{url: "not-a-url", want: false},
		{url: "ftp://example.com", want: false},
		{url: "javascript:alert(1)", want: false},
		{url: "http://", want: false},
		{url: "", want: false},
		{url: "http://exa mple.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}

func TestValidateAlias(t *testing.T) {
	assert.NoError(t, ValidateAlias(""))
	assert.NoError(t, ValidateAlias("my-link"))
	assert.NoError(t, ValidateAlias("abcd"))
	assert.NoError(t, ValidateAlias("a_b-c_D1234567890xyz"))
	assert.ErrorIs(t, ValidateAlias("abc"), ErrInvalidAlias)
	assert.ErrorIs(t, ValidateAlias("this-alias-is-far-too-long"), ErrInvalidAlias)
	assert.ErrorIs(t, ValidateAlias("no spaces"), ErrInvalidAlias)
	assert.ErrorIs(t, ValidateAlias("slash/es"), ErrInvalidAlias)
}

func TestValidateExpirationDays(t *testing.T) {
	assert.NoError(t, ValidateExpirationDays(0))
	assert.NoError(t, ValidateExpirationDays(1))
	assert.NoError(t, ValidateExpirationDays(365))
	assert.ErrorIs(t, ValidateExpirationDays(-1), ErrInvalidExpiration)
	assert.ErrorIs(t, ValidateExpirationDays(366), ErrInvalidExpiration)
}
