package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_SelectCellsEitherOrder(t *testing.T) {
	vm, _ := seeded(t)
	c := NewController(vm, NewView(Week, anchor, time.UTC))

	at := func(h, m int) time.Time { return time.Date(2024, 3, 1, h, m, 0, 0, time.UTC) }

	require.NoError(t, c.SelectCells(at(10, 40), at(9, 5)))

	got := vm.State().Create.Slot
	assert.Equal(t, at(9, 0), got.Start)
	assert.Equal(t, at(11, 0), got.End)
}

func TestController_MonthSelectionCoversDays(t *testing.T) {
	vm, _ := seeded(t)
	c := NewController(vm, NewView(Month, anchor, time.UTC))

	require.NoError(t, c.SelectCells(
		time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC),
	))

	got := vm.State().Create.Slot
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got.Start)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), got.End)
}

func TestController_ClickEventThenCancel(t *testing.T) {
	vm, _ := seeded(t, "A", "B")
	c := NewController(vm, NewView(Month, anchor, time.UTC))

	require.NoError(t, c.ClickEvent(1))
	require.NoError(t, vm.ConfirmCancel(context.Background()))
	require.Len(t, vm.Appointments(), 1)
	assert.Equal(t, "B", vm.Appointments()[0].Title)
}

func TestController_NavigateAndSwitch(t *testing.T) {
	vm, _ := seeded(t)
	c := NewController(vm, NewView(Month, anchor, time.UTC))
	c.now = func() time.Time { return time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, c.Navigate(Next))
	assert.Equal(t, "April 2024", c.View().Label())

	require.NoError(t, c.Navigate(Prev))
	require.NoError(t, c.Navigate(Prev))
	assert.Equal(t, "February 2024", c.View().Label())

	require.NoError(t, c.Navigate(Today))
	assert.Equal(t, "July 2025", c.View().Label())

	c.SwitchView(Day)
	assert.Equal(t, "Friday, July 4, 2025", c.View().Label())

	assert.Error(t, c.Navigate("sideways"))

	// navigation never touches appointment state
	assert.Equal(t, Idle, vm.State().Create.Phase)
}

func TestController_SlotAt(t *testing.T) {
	vm, _ := seeded(t)
	c := NewController(vm, NewView(Day, anchor, time.UTC))
	s := c.SlotAt(time.Date(2024, 3, 1, 14, 59, 0, 0, time.UTC))
	assert.Equal(t, 14, s.Start.Hour())
	assert.Equal(t, 30, s.Start.Minute())
}
