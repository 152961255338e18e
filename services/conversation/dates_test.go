package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start string
		end   string
	}{
		{"dash separator", "15/08/2025 - 17/08/2025", "2025-08-15", "2025-08-17"},
		{"no spaces", "15/08/2025-17/08/2025", "2025-08-15", "2025-08-17"},
		{"al separator", "15/08/2025 al 17/08/2025", "2025-08-15", "2025-08-17"},
		{"del prefix", "del 15/08/2025 al 17/08/2025", "2025-08-15", "2025-08-17"},
		{"a separator", "15/08/2025 a 17/08/2025", "2025-08-15", "2025-08-17"},
		{"dashes inside dates", "15-08-2025 a 17-08-2025", "2025-08-15", "2025-08-17"},
		{"single digit day and month", "1/9/2025 - 4/9/2025", "2025-09-01", "2025-09-04"},
		{"surrounding words", "we'd like 15/08/2025 - 17/08/2025 please", "2025-08-15", "2025-08-17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseDateRange(tt.input, 30)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start.Format("2006-01-02"))
			assert.Equal(t, tt.end, end.Format("2006-01-02"))
			assert.Equal(t, time.UTC, start.Location())
		})
	}
}

func TestParseDateRangeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no dates", "next weekend", ErrDateFormat},
		{"one date", "15/08/2025", ErrDateFormat},
		{"three dates", "15/08/2025 16/08/2025 17/08/2025", ErrDateFormat},
		{"zero nights", "15/08/2025 - 15/08/2025", ErrEmptyRange},
		{"reversed", "17/08/2025 - 15/08/2025", ErrEmptyRange},
		{"too long", "01/08/2025 - 15/09/2025", ErrStayTooLong},
		{"nonexistent day", "32/01/2025 - 02/02/2025", ErrDateInvalid},
		{"nonexistent month", "10/13/2025 - 12/13/2025", ErrDateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDateRange(tt.input, 30)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDateRangeMaxStayDisabled(t *testing.T) {
	// maxStayNights <= 0 disables the length check.
	_, _, err := ParseDateRange("01/01/2025 - 01/06/2025", 0)
	assert.NoError(t, err)
}
