package calendar

import (
	"fmt"
	"sync"
	"time"
)

type Direction string

const (
	Prev  Direction = "prev"
	Next  Direction = "next"
	Today Direction = "today"
)

// Controller turns grid gestures into view-model calls. Its only state is
// the visible view.
type Controller struct {
	vm  *ViewModel
	now func() time.Time

	mu   sync.Mutex
	view View
}

func NewController(vm *ViewModel, view View) *Controller {
	return &Controller{
		vm:   vm,
		now:  time.Now,
		view: view,
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SlotAt snaps a pointer time to the cell under it.
func (c *Controller) SlotAt(t time.Time) Slot {
	return c.View().SlotAt(t)
}

// SelectCells handles a drag from the cell at a to the cell at b, in
// either order, and opens the creation dialog for the covered range.
func (c *Controller) SelectCells(a, b time.Time) error {
	v := c.View()
	from, to := v.SlotAt(a), v.SlotAt(b)
	if to.Start.Before(from.Start) {
		from, to = to, from
	}
	return c.vm.SelectSlot(Slot{Start: from.Start, End: to.End})
}

// ClickEvent opens the cancellation dialog for the appointment with id.
func (c *Controller) ClickEvent(id uint) error {
	return c.vm.SelectEvent(id)
}

func (c *Controller) Navigate(d Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch d {
	case Prev:
		c.view = c.view.Prev()
	case Next:
		c.view = c.view.Next()
	case Today:
		c.view = c.view.Today(c.now())
	default:
		return fmt.Errorf("unknown direction %q", d)
	}
	return nil
}

func (c *Controller) SwitchView(g Granularity) {
	c.mu.Lock()
	c.view = c.view.WithGranularity(g)
	c.mu.Unlock()
}
