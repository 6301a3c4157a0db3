package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKm(t *testing.T) {
	tests := []struct {
		km   int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{12345, "12,345"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatKm(tt.km))
	}
}

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, "oil change and brakes",
		formatDetails("  oil change \n and   brakes "))

	long := strings.Repeat("x", 300)
	assert.Len(t, formatDetails(long), maxDetailsLen)
}

func TestTemplateParams(t *testing.T) {
	msg := Message{
		Date:           time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		ScooterID:      "EBC 123",
		CurrentKm:      12500,
		NextKm:         16500,
		ServiceDetails: "oil change",
	}

	params := msg.templateParams()
	require.Len(t, params, 5)
	assert.Equal(t, "07/03/2025", params[0])
	assert.Equal(t, "EBC 123", params[1])
	assert.Equal(t, "12,500", params[2])
	assert.Equal(t, "16,500", params[3])
	assert.Equal(t, "oil change", params[4])
}

func TestIsBolt(t *testing.T) {
	assert.True(t, Message{CategoryName: "Bolt Fleet"}.IsBolt())
	assert.True(t, Message{CategoryName: "125cc BOLT"}.IsBolt())
	assert.False(t, Message{CategoryName: "Private Rental"}.IsBolt())
	assert.False(t, Message{CategoryName: ""}.IsBolt())
}

func TestMessageValid(t *testing.T) {
	msg := testMessage("EBC 123", "125cc")
	assert.True(t, msg.Valid())

	missingDate := msg
	missingDate.Date = time.Time{}
	assert.False(t, missingDate.Valid())

	missingID := msg
	missingID.ScooterID = ""
	assert.False(t, missingID.Valid())

	zeroKm := msg
	zeroKm.CurrentKm = 0
	assert.False(t, zeroKm.Valid())
}
