package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyHeaders = []string{"MODEL NUMBER", "SERVICE DATE", "MILAGE", "NEXT SERVICE AT", "DONE"}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantValid   bool
		wantMissing []string
	}{
		{
			name:      "full history sheet",
			headers:   historyHeaders,
			wantValid: true,
		},
		{
			name:      "minimal matching headers",
			headers:   []string{"SERVICE DATE", "MILAGE", "NEXT SERVICE AT"},
			wantValid: true,
		},
		{
			name:      "case and decoration ignored",
			headers:   []string{"Service Date ", "Milage (km)", "next service at"},
			wantValid: true,
		},
		{
			name:        "next service column missing",
			headers:     []string{"DATE", "KM"},
			wantValid:   false,
			wantMissing: []string{"next service km"},
		},
		{
			name:        "everything missing",
			headers:     []string{"FOO", "BAR"},
			wantValid:   false,
			wantMissing: []string{"service date", "current km", "next service km"},
		},
		{
			name:        "empty header row",
			headers:     nil,
			wantValid:   false,
			wantMissing: []string{"service date", "current km", "next service km"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateHeaders(tt.headers)
			assert.Equal(t, tt.wantValid, check.Valid)
			assert.Equal(t, tt.wantMissing, check.Missing)
		})
	}
}

func TestNewPipeline_MissingColumns(t *testing.T) {
	_, err := NewPipeline([]string{"DATE", "KM"})
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "next service km")
}

func TestNormalizeRow(t *testing.T) {
	p, err := NewPipeline(historyHeaders)
	require.NoError(t, err)

	t.Run("valid row", func(t *testing.T) {
		rec, err := p.NormalizeRow(Row{
			"SERVICE DATE":    "15-Jan-24",
			"MILAGE":          "5,000",
			"NEXT SERVICE AT": 9000.0,
			"DONE":            "  oil   change \n brake pads ",
		}, "SC-014")
		require.NoError(t, err)

		assert.Equal(t, "SC-014", rec.ScooterID)
		assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), rec.ServiceDate)
		assert.Equal(t, 5000, rec.CurrentKm)
		assert.Equal(t, 9000, rec.NextKm)
		assert.Equal(t, "oil change brake pads", rec.ServiceDetails)
		assert.Greater(t, rec.NextKm, rec.CurrentKm)
		assert.GreaterOrEqual(t, rec.CurrentKm, 0)
	})

	t.Run("missing details column yields empty text", func(t *testing.T) {
		p2, err := NewPipeline([]string{"SERVICE DATE", "MILAGE", "NEXT SERVICE AT"})
		require.NoError(t, err)
		rec, err := p2.NormalizeRow(Row{
			"SERVICE DATE":    "15-Jan-24",
			"MILAGE":          "100",
			"NEXT SERVICE AT": "4100",
		}, "SC-001")
		require.NoError(t, err)
		assert.Equal(t, "", rec.ServiceDetails)
	})

	t.Run("km order violation", func(t *testing.T) {
		// Both values parse fine on their own; the ordering rule rejects.
		_, err := p.NormalizeRow(Row{
			"SERVICE DATE":    "01-Dec-23",
			"MILAGE":          "5,000",
			"NEXT SERVICE AT": 4000.0,
		}, "SC-014")
		assert.ErrorIs(t, err, ErrKilometerOrder)
	})

	t.Run("equal km rejected", func(t *testing.T) {
		_, err := p.NormalizeRow(Row{
			"SERVICE DATE":    "01-Dec-23",
			"MILAGE":          5000.0,
			"NEXT SERVICE AT": 5000.0,
		}, "SC-014")
		assert.ErrorIs(t, err, ErrKilometerOrder)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := p.NormalizeRow(Row{
			"SERVICE DATE":    "32-Foo-24",
			"MILAGE":          "100",
			"NEXT SERVICE AT": "4100",
		}, "SC-014")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("bad km", func(t *testing.T) {
		_, err := p.NormalizeRow(Row{
			"SERVICE DATE":    "15-Jan-24",
			"MILAGE":          "n/a",
			"NEXT SERVICE AT": "4100",
		}, "SC-014")
		assert.ErrorIs(t, err, ErrInvalidKilometer)
	})
}

func TestProcessBatch(t *testing.T) {
	p, err := NewPipeline(historyHeaders)
	require.NoError(t, err)

	rows := []Row{
		// Deliberately out of temporal order.
		{"SERVICE DATE": "10-Mar-24", "MILAGE": "9000", "NEXT SERVICE AT": "13000", "DONE": "third"},
		{"SERVICE DATE": "15-Jan-24", "MILAGE": "1000", "NEXT SERVICE AT": "5000", "DONE": "first"},
		{"SERVICE DATE": "bogus", "MILAGE": "2000", "NEXT SERVICE AT": "6000"},
		{"SERVICE DATE": "01-Feb-24", "MILAGE": "5000", "NEXT SERVICE AT": "9000", "DONE": "second"},
		{"SERVICE DATE": "02-Feb-24", "MILAGE": "7000", "NEXT SERVICE AT": "7000"},
	}

	records, summary := p.ProcessBatch(rows, "SC-014")

	assert.Equal(t, 5, summary.TotalRows)
	assert.Equal(t, 3, summary.Accepted)
	assert.Equal(t, 2, summary.Rejected)
	require.Len(t, summary.Rejections, 2)
	assert.Equal(t, 2, summary.Rejections[0].Row)
	assert.Contains(t, summary.Rejections[0].Reason, "invalid date")
	assert.Equal(t, 4, summary.Rejections[1].Row)

	// Accepted records come back sorted ascending by date.
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].ServiceDetails)
	assert.Equal(t, "second", records[1].ServiceDetails)
	assert.Equal(t, "third", records[2].ServiceDetails)
	for _, rec := range records {
		assert.Greater(t, rec.NextKm, rec.CurrentKm)
		assert.GreaterOrEqual(t, rec.CurrentKm, 0)
	}

	require.NotNil(t, summary.Earliest)
	require.NotNil(t, summary.Latest)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *summary.Earliest)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), *summary.Latest)
	assert.NoError(t, summary.Err())
}

func TestProcessBatch_NoValidRecords(t *testing.T) {
	p, err := NewPipeline(historyHeaders)
	require.NoError(t, err)

	records, summary := p.ProcessBatch([]Row{
		{"SERVICE DATE": "bogus", "MILAGE": "x", "NEXT SERVICE AT": "y"},
	}, "SC-014")

	assert.Empty(t, records)
	assert.Equal(t, 1, summary.Rejected)
	assert.Nil(t, summary.Earliest)
	assert.Nil(t, summary.Latest)
	assert.ErrorIs(t, summary.Err(), ErrNoValidRecords)
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	p, err := NewPipeline(historyHeaders)
	require.NoError(t, err)

	records, summary := p.ProcessBatch(nil, "SC-014")
	assert.Empty(t, records)
	assert.Equal(t, 0, summary.TotalRows)
	assert.ErrorIs(t, summary.Err(), ErrNoValidRecords)
}
