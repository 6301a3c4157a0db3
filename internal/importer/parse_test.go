package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_TextualForms(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want time.Time
	}{
		{"DD-MMM-YY", "15-Jan-24", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"DD-MMM-YYYY", "15-Jan-2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"lowercase month", "1-dec-23", time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)},
		{"ISO", "2024-03-09", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)},
		{"en-GB slashes", "09/03/2024", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)},
		{"spelled month", "9 Mar 2024", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_SerialDayCount(t *testing.T) {
	// Serial 45000 is 2023-03-15 (45000-25569 days after Unix epoch).
	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate(45000.0)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Raw xlsx decode hands the same serial over as a digit string.
	got, err = ParseDate("45000")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"unknown month abbreviation", "32-Foo-24"},
		{"day out of range", "32-Jan-24"},
		{"day zero", "0-Jan-24"},
		{"calendar invalid", "31-Feb-24"},
		{"three digit year", "15-Jan-202"},
		{"garbage text", "not a date"},
		{"empty string", ""},
		{"negative serial", -12.0},
		{"serial past year 9999", 3000000.0},
		{"unsupported type", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParseKilometer(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"plain int", 5000, 5000},
		{"float", 5000.0, 5000},
		{"zero", 0, 0},
		{"digit string", "5000", 5000},
		{"thousands separator", "5,000", 5000},
		{"units and whitespace", " 12 345 km ", 12345},
		{"decimal string truncates", "4500.7", 4500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKilometer(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKilometer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"negative int", -1},
		{"negative float", -0.5},
		{"no digits at all", "n/a"},
		{"empty string", ""},
		{"multiple dots", "1.2.3"},
		{"unsupported type", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKilometer(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidKilometer)
		})
	}
}
