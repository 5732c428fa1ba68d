package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

func addMonth(topLevel *cobra.Command) {
	var (
		monthArg string
		prev     int
		next     int
		day      int
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month grid with event days highlighted",
		Example: `
calctl month
calctl month --month 2025-12
calctl month --prev 2
calctl month --day 20
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			now := time.Now()
			year, mon := now.Year(), now.Month()
			if monthArg != "" {
				t, err := time.Parse("2006-01", monthArg)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", monthArg)
				}
				year, mon = t.Year(), t.Month()
			}

			s := newSession()
			ctrl := s.controllerAt(year, mon)
			if err := ctrl.RefreshCurrent(ctx); err != nil {
				return err
			}
			for i := 0; i < prev; i++ {
				if err := ctrl.PrevMonth(ctx); err != nil {
					return err
				}
			}
			for i := 0; i < next; i++ {
				if err := ctrl.NextMonth(ctx); err != nil {
					return err
				}
			}
			if day > 0 {
				if err := ctrl.SelectDay(ctx, day); err != nil {
					return err
				}
			}

			year, mon, selected := ctrl.State()
			printMonthGrid(year, mon, s.cache.EventDaysFor(year, mon), selected)

			key := model.DateKey(year, mon, selected)
			if events := s.cache.EventsOn(key); len(events) > 0 {
				printEvents(events)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthArg, "month", "", "month to show as YYYY-MM (default: current)")
	cmd.Flags().IntVar(&prev, "prev", 0, "step back this many months")
	cmd.Flags().IntVar(&next, "next", 0, "step forward this many months")
	cmd.Flags().IntVar(&day, "day", 0, "select this day of the month")

	topLevel.AddCommand(cmd)
}
