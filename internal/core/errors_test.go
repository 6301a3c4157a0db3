package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/la-rentals/fleet/internal/importer"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "scooters_pkey"`), "DB001"},
		{"foreign key", errors.New("violates foreign key constraint"), "DB002"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB003"},
		{"invalid date sentinel", fmt.Errorf("row 3: %w", importer.ErrInvalidDate), "VAL001"},
		{"invalid km sentinel", fmt.Errorf("row 5: %w", importer.ErrInvalidKilometer), "VAL002"},
		{"km order sentinel", importer.ErrKilometerOrder, "VAL003"},
		{"missing columns", importer.ErrMissingColumns, "VAL004"},
		{"no valid records", importer.ErrNoValidRecords, "VAL005"},
		{"workbook decode", errors.New("open workbook: zip: not a valid zip file"), "FILE002"},
		{"category not empty", errors.New("category abc: category still has scooters"), "CAT001"},
		{"cancelled", errors.New("context canceled"), "REQ001"},
		{"unmapped", errors.New("something exploded"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			assert.Equal(t, tt.wantCode, msg.Code)
			if tt.err != nil {
				assert.NotEmpty(t, msg.Message)
				assert.NotEmpty(t, msg.Action)
			}
		})
	}
}

func TestMapError_CaseInsensitive(t *testing.T) {
	msg := MapError(errors.New("DUPLICATE KEY value"))
	assert.Equal(t, "DB001", msg.Code)
}
