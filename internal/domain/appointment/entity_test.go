package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	manila := time.FixedZone("PST", 8*60*60)
	start := time.Date(2024, 3, 1, 17, 0, 0, 0, manila)
	end := start.Add(30 * time.Minute)

	ap, err := New("  Checkup ", start, end)
	require.NoError(t, err)

	assert.Equal(t, "Checkup", ap.Title)
	assert.Equal(t, time.UTC, ap.Start.Location())
	assert.True(t, ap.Start.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, ap.End.Equal(end))
}

func TestNew_Validation(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	tests := []struct {
		name  string
		title string
		start time.Time
		end   time.Time
		field string
	}{
		{"empty title", "", start, end, "title"},
		{"blank title", "   ", start, end, "title"},
		{"missing start", "Checkup", time.Time{}, end, "start"},
		{"missing end", "Checkup", start, time.Time{}, "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.start, tt.end)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestNew_EndBeforeStartIsAccepted(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := New("Checkup", start, start.Add(-time.Hour))
	assert.NoError(t, err)
}
