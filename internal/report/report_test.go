package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		CategoryName: "Private Rental",
		From:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Rows: []Row{
			{
				Date:           time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
				ScooterID:      "EBC 123",
				CurrentKm:      12000,
				NextKm:         16000,
				ServiceDetails: "oil change, brake pads",
			},
			{
				Date:           time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
				ScooterID:      "EBC 456",
				CurrentKm:      7400,
				NextKm:         11400,
				ServiceDetails: "tyre replacement",
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleData()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Date", "Vehicle ID", "Current KM", "Next Service", "Service Details"}, records[0])
	assert.Equal(t, []string{"12/05/2025", "EBC 123", "12000", "16000", "oil change, brake pads"}, records[1])
	assert.Equal(t, []string{"03/02/2025", "EBC 456", "7400", "11400", "tyre replacement"}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	data := sampleData()
	data.Rows = nil
	require.NoError(t, WriteCSV(&buf, data))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleData()))

	// %PDF magic plus a non-trivial body is all we assert on; pixel
	// checks on PDF output are not worth their brittleness.
	out := buf.Bytes()
	require.True(t, len(out) > 1000)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestWritePDF_ManyRows(t *testing.T) {
	data := sampleData()
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, Row{
			Date:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ScooterID:      "EBC 900",
			CurrentKm:      5000 + i,
			NextKm:         9000 + i,
			ServiceDetails: "routine service",
		})
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, data))
	assert.True(t, buf.Len() > 2000)
}
