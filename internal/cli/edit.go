package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/sync"
)

// loadDay fetches a single day from the server into the cache so the
// editor can address its events by position.
func (s *session) loadDay(ctx context.Context, date string) error {
	tag := s.cache.NextTag()
	events, err := s.repo.ListEvents(ctx, date, date)
	if err != nil {
		return err
	}
	s.cache.Apply(tag, events)
	return nil
}

func addEdit(topLevel *cobra.Command) {
	var (
		clock string
		text  string
	)

	cmd := &cobra.Command{
		Use:   "edit <date> <index>",
		Short: "Edit an event addressed by its position on a day",
		Example: `
calctl edit 2025-12-20 0 --time 10:30
calctl edit 2025-12-20 1 --text "Evening run"
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
			if clock == "" && text == "" {
				return fmt.Errorf("nothing to change, give --time or --text")
			}

			s := newSession()
			if err := s.loadDay(ctx, date); err != nil {
				return err
			}

			sess, err := s.editor.OpenForEdit(date, index)
			if err != nil {
				return err
			}
			if clock != "" {
				sess.Hours, sess.Minutes = splitClock(clock)
			}
			if text != "" {
				sess.Text = text
			}

			event, err := s.editor.Commit(ctx)
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

	cmd.Flags().StringVar(&clock, "time", "", "new time as HH:MM")
	cmd.Flags().StringVar(&text, "text", "", "new event text")

	topLevel.AddCommand(cmd)
}
