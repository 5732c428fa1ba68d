package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/sync"
)

// splitClock breaks a user-typed clock value into hour and minute
// parts. "9" means nine o'clock sharp.
func splitClock(clock string) (hours, minutes string) {
	if h, m, ok := strings.Cut(clock, ":"); ok {
		return h, m
	}
	return clock, ""
}

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <date> <time> <text>...",
		Short: "Add an event",
		Example: `
calctl add 2025-12-20 09:00 Morning run
calctl add 2025-12-24 18 Christmas dinner
`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			if _, _, _, err := model.ParseDateKey(date); err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			s := newSession()
			sess := s.editor.OpenForCreate(date)
			sess.Hours, sess.Minutes = splitClock(args[1])
			sess.Text = strings.Join(args[2:], " ")

			event, err := s.editor.Commit(context.Background())
			if err != nil {
				var verr *sync.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("not saved: %s", verr.Reason)
				}
				return err
			}
			printEvent(event)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
