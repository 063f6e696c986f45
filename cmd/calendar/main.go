package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/clinic-portal/internal/apiclient"
	"github.com/BruksfildServices01/clinic-portal/internal/calendar"
	"github.com/BruksfildServices01/clinic-portal/internal/config"
	"github.com/BruksfildServices01/clinic-portal/internal/timezone"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "calendar",
		Short:        "Clinic appointment calendar",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("api", cfg.APIBaseURL, "Base URL of the clinic API")
	rootCmd.PersistentFlags().String("tz", cfg.CalendarTZ, "Display time zone")
	rootCmd.PersistentFlags().String("view", string(calendar.Month), "Grid: month, week or day")
	rootCmd.PersistentFlags().String("date", "", "Date to show, YYYY-MM-DD (default today)")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(cancelCmd())

	return rootCmd
}

type session struct {
	vm      *calendar.ViewModel
	ctrl    *calendar.Controller
	loc     *time.Location
	loadErr error
}

// open builds the view-model and controller from the persistent flags and
// loads the appointment list. A failed load still returns a session, with
// loadErr set, so the banner can be rendered.
func open(cmd *cobra.Command) (*session, error) {
	apiURL, _ := cmd.Flags().GetString("api")
	tz, _ := cmd.Flags().GetString("tz")
	viewName, _ := cmd.Flags().GetString("view")
	date, _ := cmd.Flags().GetString("date")

	g, err := calendar.ParseGranularity(viewName)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tz)
	anchor := timezone.NowIn(tz)
	if date != "" {
		anchor, err = time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date: %w", err)
		}
	}

	vm := calendar.NewViewModel(apiclient.New(apiURL, nil))
	loadErr := vm.Mount(cmd.Context())

	return &session{
		vm:      vm,
		ctrl:    calendar.NewController(vm, calendar.NewView(g, anchor, loc)),
		loc:     loc,
		loadErr: loadErr,
	}, nil
}

func (s *session) render(cmd *cobra.Command) error {
	return calendar.Render(cmd.OutOrStdout(), s.ctrl.View(), s.vm.State())
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the calendar grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}

			offset, _ := cmd.Flags().GetInt("offset")
			dir := calendar.Next
			if offset < 0 {
				dir, offset = calendar.Prev, -offset
			}
			for i := 0; i < offset; i++ {
				if err := s.ctrl.Navigate(dir); err != nil {
					return err
				}
			}

			return s.render(cmd)
		},
	}
	cmd.Flags().Int("offset", 0, "Periods to move forward (negative for back)")
	return cmd
}

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Create an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			startRaw, _ := cmd.Flags().GetString("start")
			dur, _ := cmd.Flags().GetDuration("duration")

			start, err := parseTime(startRaw, s.loc)
			if err != nil {
				return err
			}
			end := start.Add(dur)
			if endRaw, _ := cmd.Flags().GetString("end"); endRaw != "" {
				if end, err = parseTime(endRaw, s.loc); err != nil {
					return err
				}
			}

			if err := s.vm.SelectSlot(calendar.Slot{Start: start, End: end}); err != nil {
				return err
			}
			ap, err := s.vm.ConfirmCreate(cmd.Context(), title)
			if err != nil {
				_ = s.render(cmd)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booked #%d %s\n\n", ap.ID, ap.Title)
			return s.render(cmd)
		},
	}
	cmd.Flags().String("title", "", "Appointment title")
	cmd.Flags().String("start", "", `Start, RFC 3339 or "YYYY-MM-DD HH:MM" in --tz`)
	cmd.Flags().String("end", "", "End, same formats as --start")
	cmd.Flags().Duration("duration", 30*time.Minute, "Length when --end is not given")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func cancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an appointment by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}

			// the id is looked up in the loaded list
			if s.loadErr != nil {
				_ = s.render(cmd)
				return s.loadErr
			}

			id, _ := cmd.Flags().GetUint("id")
			if err := s.ctrl.ClickEvent(id); err != nil {
				return err
			}
			if err := s.vm.ConfirmCancel(cmd.Context()); err != nil {
				_ = s.render(cmd)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Canceled #%d\n\n", id)
			return s.render(cmd)
		},
	}
	cmd.Flags().Uint("id", 0, "Appointment id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or \"YYYY-MM-DD HH:MM\"", raw)
	}
	return t, nil
}

