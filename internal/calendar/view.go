// Package calendar holds the client side of the appointment workflow: the
// visible period, the server-synchronized view-model, gesture handling and
// a text renderer.
package calendar

import (
	"fmt"
	"time"
)

type Granularity string

const (
	Month Granularity = "month"
	Week  Granularity = "week"
	Day   Granularity = "day"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Month, Week, Day:
		return g, nil
	}
	return "", fmt.Errorf("unknown view %q (want month, week or day)", s)
}

const (
	DefaultStep      = 30 * time.Minute
	DefaultFirstHour = 8
	DefaultLastHour  = 18
)

// Slot is a half-open time range [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Overlaps(start, end time.Time) bool {
	return start.Before(s.End) && end.After(s.Start)
}

// Cell is one box of the grid. InPeriod is false for the leading and
// trailing days a month grid borrows from its neighbours.
type Cell struct {
	Slot
	InPeriod bool
}

// View is the visible period. It carries no appointment state.
type View struct {
	Granularity Granularity
	Anchor      time.Time
	Location    *time.Location
	Step        time.Duration
	FirstHour   int
	LastHour    int
}

func NewView(g Granularity, anchor time.Time, loc *time.Location) View {
	if loc == nil {
		loc = time.UTC
	}
	return View{
		Granularity: g,
		Anchor:      anchor.In(loc),
		Location:    loc,
		Step:        DefaultStep,
		FirstHour:   DefaultFirstHour,
		LastHour:    DefaultLastHour,
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func weekStart(t time.Time) time.Time {
	d := midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Period returns the half-open range the view covers.
func (v View) Period() Slot {
	a := v.Anchor.In(v.Location)
	switch v.Granularity {
	case Month:
		first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, v.Location)
		return Slot{Start: first, End: first.AddDate(0, 1, 0)}
	case Week:
		s := weekStart(a)
		return Slot{Start: s, End: s.AddDate(0, 0, 7)}
	default:
		s := midnight(a)
		return Slot{Start: s, End: s.AddDate(0, 0, 1)}
	}
}

// Label is the period title: "March 2024", "Feb 25 - Mar 2, 2024" or
// "Friday, March 1, 2024".
func (v View) Label() string {
	p := v.Period()
	switch v.Granularity {
	case Month:
		return p.Start.Format("January 2006")
	case Week:
		last := p.End.AddDate(0, 0, -1)
		if p.Start.Year() != last.Year() {
			return p.Start.Format("Jan 2, 2006") + " - " + last.Format("Jan 2, 2006")
		}
		return p.Start.Format("Jan 2") + " - " + last.Format("Jan 2, 2006")
	default:
		return p.Start.Format("Monday, January 2, 2006")
	}
}

// Columns returns the days shown side by side.
func (v View) Columns() []time.Time {
	p := v.Period()
	switch v.Granularity {
	case Month, Week:
		s := weekStart(p.Start)
		cols := make([]time.Time, 7)
		for i := range cols {
			cols[i] = s.AddDate(0, 0, i)
		}
		return cols
	default:
		return []time.Time{p.Start}
	}
}

// Cells returns the grid row by row. Month grids are six Sunday-first
// weeks of whole days; week and day grids have one row per step between
// the visible hours.
func (v View) Cells() [][]Cell {
	p := v.Period()

	if v.Granularity == Month {
		s := weekStart(p.Start)
		rows := make([][]Cell, 6)
		for r := range rows {
			rows[r] = make([]Cell, 7)
			for c := range rows[r] {
				d := s.AddDate(0, 0, r*7+c)
				rows[r][c] = Cell{
					Slot:     Slot{Start: d, End: d.AddDate(0, 0, 1)},
					InPeriod: !d.Before(p.Start) && d.Before(p.End),
				}
			}
		}
		return rows
	}

	cols := v.Columns()
	step := v.step()
	var rows [][]Cell
	for off := time.Duration(v.FirstHour) * time.Hour; off < time.Duration(v.LastHour)*time.Hour; off += step {
		row := make([]Cell, len(cols))
		for i, day := range cols {
			start := v.at(day, off)
			row[i] = Cell{
				Slot:     Slot{Start: start, End: v.at(day, off+step)},
				InPeriod: true,
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// at returns the wall-clock time off after midnight of day. Building it
// from the date keeps cells aligned across DST changes.
func (v View) at(day time.Time, off time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, v.Location).Add(off)
}

func (v View) step() time.Duration {
	if v.Step <= 0 {
		return DefaultStep
	}
	return v.Step
}

func (v View) shift(n int) View {
	a := v.Anchor.In(v.Location)
	switch v.Granularity {
	case Month:
		first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, v.Location)
		v.Anchor = first.AddDate(0, n, 0)
	case Week:
		v.Anchor = a.AddDate(0, 0, 7*n)
	default:
		v.Anchor = a.AddDate(0, 0, n)
	}
	return v
}

func (v View) Prev() View { return v.shift(-1) }
func (v View) Next() View { return v.shift(1) }

func (v View) Today(now time.Time) View {
	v.Anchor = now.In(v.Location)
	return v
}

func (v View) WithGranularity(g Granularity) View {
	v.Granularity = g
	return v
}

// SlotAt snaps t to the cell containing it: a whole day in month view,
// one step otherwise.
func (v View) SlotAt(t time.Time) Slot {
	t = t.In(v.Location)
	day := midnight(t)
	if v.Granularity == Month {
		return Slot{Start: day, End: day.AddDate(0, 0, 1)}
	}

	step := v.step()
	off := t.Sub(day)
	off -= off % step
	return Slot{Start: v.at(day, off), End: v.at(day, off+step)}
}
