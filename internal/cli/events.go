package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

func addEvents(topLevel *cobra.Command) {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "events [date]",
		Short: "List events on a day or in a date range",
		Example: `
calctl events 2025-12-20
calctl events --from 2025-12-01 --to 2025-12-31
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				from, to = args[0], args[0]
			}
			if from == "" || to == "" {
				return fmt.Errorf("give a date argument or both --from and --to")
			}
			if _, _, _, err := model.ParseDateKey(from); err != nil {
				return fmt.Errorf("invalid date %q: %w", from, err)
			}
			if _, _, _, err := model.ParseDateKey(to); err != nil {
				return fmt.Errorf("invalid date %q: %w", to, err)
			}

			s := newSession()
			events, err := s.repo.ListEvents(context.Background(), from, to)
			if err != nil {
				return err
			}
			printEvents(events)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start as YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end as YYYY-MM-DD")

	topLevel.AddCommand(cmd)
}
