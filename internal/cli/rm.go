package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <date> <index>",
		Short: "Delete an event addressed by its position on a day",
		Example: `
calctl rm 2025-12-20 0
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			date := args[0]
			if _, _, _, err := model.ParseDateKey(date); err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}

			s := newSession()
			if err := s.loadDay(ctx, date); err != nil {
				return err
			}
			if err := s.editor.DeleteEvent(ctx, date, index); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
