package payment

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestValidator(now time.Time) *Validator {
	return NewValidator(time.UTC).WithClock(func() time.Time { return now })
}

// codeAt builds a provider A code issued at t.
func codeAt(t time.Time) string {
	return fmt.Sprintf("CI%02d%02d%02d.%02d%02d.A12345", t.Year()%100, int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

func TestValidate_ShortInputRejected(t *testing.T) {
	v := newTestValidator(testNow)
	for _, id := range []string{"", "1", "1234", "  12  ", "\tAB1\n"} {
		assert.False(t, v.Validate(id, ProviderA), id)
		assert.False(t, v.Validate(id, ProviderB), id)
	}
}

func TestValidate_ProviderB(t *testing.T) {
	v := newTestValidator(testNow)

	tests := []struct {
		id   string
		want bool
	}{
		{"15405748542", true},
		{"  15405748542 ", true},
		{"00000000000", true},
		{"1540574854", false},
		{"154057485421", false},
		{"1540574854a", false},
		{"1540-574854", false},
		{"CI250314.1012.A12345", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.Validate(tt.id, ProviderB), tt.id)
	}
}

func TestValidate_ProviderAFormat(t *testing.T) {
	v := newTestValidator(testNow)

	for _, id := range []string{
		"AB123.456.C789",
		"ci250314.1012.A12345",
		"CI250314.1012.A1234",
		"CI250314.1012.A1234567",
		"CI250314-1012-A12345",
		"C1250314.1012.A12345",
		"15405748542",
	} {
		assert.ErrorIs(t, v.Classify(id, ProviderA), ErrFormatInvalid, id)
	}

	assert.True(t, v.Validate("CI250314.1012.A123456", ProviderA), "six trailing digits allowed")
	assert.True(t, v.Validate(" CI250314.1012.A12345 ", ProviderA), "surrounding space trimmed")
}

func TestValidate_ProviderAWindow(t *testing.T) {
	v := newTestValidator(testNow)

	tests := []struct {
		name   string
		issued time.Time
		want   bool
	}{
		{"now", testNow, true},
		{"45 minutes ago", testNow.Add(-45 * time.Minute), true},
		{"60 minutes ago", testNow.Add(-60 * time.Minute), true},
		{"61 minutes ago", testNow.Add(-61 * time.Minute), false},
		{"90 minutes ago", testNow.Add(-90 * time.Minute), false},
		{"5 minutes ahead", testNow.Add(5 * time.Minute), true},
		{"6 minutes ahead", testNow.Add(6 * time.Minute), false},
		{"yesterday same time", testNow.AddDate(0, 0, -1), false},
		{"tomorrow same time", testNow.AddDate(0, 0, 1), false},
		{"last year", testNow.AddDate(-1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(codeAt(tt.issued), ProviderA))
		})
	}
}

func TestValidate_ProviderASameDayAcrossMidnight(t *testing.T) {
	justAfterMidnight := time.Date(2025, 3, 14, 0, 10, 0, 0, time.UTC)
	v := newTestValidator(justAfterMidnight)

	// 20 minutes earlier is inside the hour window but on the previous day
	issued := justAfterMidnight.Add(-20 * time.Minute)
	assert.ErrorIs(t, v.Classify(codeAt(issued), ProviderA), ErrTemporalInvalid)
}

func TestValidate_ProviderAInvalidCalendarDate(t *testing.T) {
	v := newTestValidator(testNow)

	for _, id := range []string{
		"CI251314.1012.A12345", // month 13
		"CI250230.1012.A12345", // Feb 30
		"CI250314.2512.A12345", // hour 25
		"CI250314.1075.A12345", // minute 75
	} {
		assert.ErrorIs(t, v.Classify(id, ProviderA), ErrTemporalInvalid, id)
	}
}

func TestValidate_ProviderAUsesValidatorLocation(t *testing.T) {
	douala := time.FixedZone("WAT", 3600)
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) // 10:30 in WAT
	v := NewValidator(douala).WithClock(func() time.Time { return now })

	assert.True(t, v.Validate("CI250314.1020.A12345", ProviderA))
	assert.False(t, v.Validate("CI250314.0920.A12345", ProviderA), "09:20 WAT is 70 minutes ago")
}

func TestValidate_FailOpenOnTimestampParseError(t *testing.T) {
	v := newTestValidator(testNow)
	v.issuedAt = func(string) (time.Time, error) {
		return time.Time{}, fmt.Errorf("%w: boom", errTimestampParse)
	}

	// stale code, but its timestamp is unreadable so format alone decides
	assert.True(t, v.Validate("CI200101.0000.A12345", ProviderA))
	assert.False(t, v.Validate("AB123.456.C789", ProviderA), "format is still enforced")
}

func TestEmbeddedTime_ParseError(t *testing.T) {
	v := newTestValidator(testNow)

	_, err := v.embeddedTime("CI25x314.1012")
	assert.ErrorIs(t, err, errTimestampParse)

	_, err = v.embeddedTime("CI25")
	assert.ErrorIs(t, err, errTimestampParse)

	got, err := v.embeddedTime("CI250314.1012.A12345")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 10, 12, 0, 0, time.UTC), got)
}

func TestValidate_UnknownProvider(t *testing.T) {
	v := newTestValidator(testNow)
	assert.ErrorIs(t, v.Classify("15405748542", Provider("C")), ErrUnknownProvider)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" a ")
	require.NoError(t, err)
	assert.Equal(t, ProviderA, p)

	p, err = ParseProvider("B")
	require.NoError(t, err)
	assert.Equal(t, ProviderB, p)

	_, err = ParseProvider("orange")
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.True(t, strings.Contains(err.Error(), "orange"))
}
