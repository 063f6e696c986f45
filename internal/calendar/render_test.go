package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-portal/internal/dto"
)

func checkupAt(id uint, title string, start time.Time) dto.Appointment {
	return dto.Appointment{ID: id, Title: title, Start: start, End: start.Add(30 * time.Minute)}
}

func TestRender_MonthShowsAppointmentsAndBanner(t *testing.T) {
	var buf bytes.Buffer
	st := State{
		Appointments: []dto.Appointment{checkupAt(7, "Checkup", slot.Start)},
		ErrorMessage: MsgCancelFailed,
	}

	require.NoError(t, Render(&buf, NewView(Month, anchor, time.UTC), st))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "[!] Error canceling appointment"))
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "#7 Checkup")
	assert.Contains(t, out, "(25)")
}

func TestRender_WeekPlacesBySlot(t *testing.T) {
	var buf bytes.Buffer
	st := State{
		Appointments: []dto.Appointment{
			checkupAt(1, "Morning", time.Date(2024, 2, 27, 9, 0, 0, 0, time.UTC)),
			checkupAt(2, "Outside", time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)),
		},
	}

	require.NoError(t, Render(&buf, NewView(Week, anchor, time.UTC), st))
	out := buf.String()

	assert.Contains(t, out, "Feb 25 - Mar 2, 2024")
	assert.Contains(t, out, "Time")
	assert.Contains(t, out, "Tue 2/27")
	assert.Contains(t, out, "#1 Morning")
	assert.NotContains(t, out, "Outside")
	assert.NotContains(t, out, "[!]")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "#1 Morning") {
			assert.Contains(t, line, "09:00")
		}
	}
}

func TestRender_OpenDialogs(t *testing.T) {
	var buf bytes.Buffer
	st := State{
		Create: CreateDialog{Phase: SlotChosen, Slot: slot},
		Cancel: CancelDialog{Phase: Submitting, Appointment: checkupAt(3, "Checkup", slot.Start)},
	}

	require.NoError(t, Render(&buf, NewView(Day, anchor, time.UTC), st))
	out := buf.String()

	assert.Contains(t, out, "New appointment Mar 1 09:00 - Mar 1 09:30 (slot_chosen)")
	assert.Contains(t, out, "Cancel #3 Checkup? (submitting)")
}
