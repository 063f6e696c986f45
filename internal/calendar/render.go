package calendar

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/BruksfildServices01/clinic-portal/internal/dto"
)

// Render draws the error banner, the period label and the grid for v.
// Each appointment is listed in every cell it overlaps as "#id title".
func Render(w io.Writer, v View, st State) error {
	if st.ErrorMessage != "" {
		if _, err := fmt.Fprintf(w, "[!] %s\n\n", st.ErrorMessage); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", v.Label()); err != nil {
		return err
	}

	apps := append([]dto.Appointment{}, st.Appointments...)
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Start.Before(apps[j].Start)
	})

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	cols := v.Columns()
	rows := v.Cells()

	if v.Granularity == Month {
		header := make([]string, len(cols))
		for i, d := range cols {
			header[i] = d.Format("Mon")
		}
		table.SetHeader(header)

		for _, row := range rows {
			line := make([]string, len(row))
			for i, cell := range row {
				day := cell.Start.Format("2")
				if !cell.InPeriod {
					day = "(" + day + ")"
				}
				line[i] = strings.Join(append([]string{day}, entries(cell.Slot, apps)...), "\n")
			}
			table.Append(line)
		}
	} else {
		header := []string{"Time"}
		for _, d := range cols {
			header = append(header, d.Format("Mon 1/2"))
		}
		table.SetHeader(header)

		for _, row := range rows {
			line := []string{row[0].Start.Format("15:04")}
			for _, cell := range row {
				line = append(line, strings.Join(entries(cell.Slot, apps), "\n"))
			}
			table.Append(line)
		}
	}

	table.Render()

	if st.Create.Phase != Idle {
		if _, err := fmt.Fprintf(w, "New appointment %s - %s (%s)\n",
			st.Create.Slot.Start.In(v.Location).Format("Jan 2 15:04"),
			st.Create.Slot.End.In(v.Location).Format("Jan 2 15:04"),
			st.Create.Phase); err != nil {
			return err
		}
	}
	if st.Cancel.Phase != Idle {
		if _, err := fmt.Fprintf(w, "Cancel #%d %s? (%s)\n",
			st.Cancel.Appointment.ID, st.Cancel.Appointment.Title, st.Cancel.Phase); err != nil {
			return err
		}
	}
	return nil
}

func entries(s Slot, apps []dto.Appointment) []string {
	var out []string
	for _, ap := range apps {
		end := ap.End
		if !end.After(ap.Start) {
			// zero-length or inverted ranges still show at their start
			end = ap.Start.Add(1)
		}
		if s.Overlaps(ap.Start, end) {
			out = append(out, fmt.Sprintf("#%d %s", ap.ID, ap.Title))
		}
	}
	return out
}
