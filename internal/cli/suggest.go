package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/sync"
)

func addSuggest(topLevel *cobra.Command) {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "suggest --from <date> --to <date> <prompt>...",
		Short: "Ask the AI for schedule suggestions and merge them in",
		Long: `Asks calendard for schedule suggestions over a date range and commits
the ones that do not collide with existing events. A suggestion whose
exact date and time slot is already taken is dropped, not errored.`,
		Example: `
calctl suggest --from 2025-12-20 --to 2025-12-27 plan three runs next week
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if from == "" || to == "" {
				return fmt.Errorf("both --from and --to are required")
			}
			if _, _, _, err := model.ParseDateKey(from); err != nil {
				return fmt.Errorf("invalid --from %q: %w", from, err)
			}
			if _, _, _, err := model.ParseDateKey(to); err != nil {
				return fmt.Errorf("invalid --to %q: %w", to, err)
			}
			prompt := strings.Join(args, " ")

			s := newSession()
			tag := s.cache.NextTag()
			existing, err := s.repo.ListEvents(ctx, from, to)
			if err != nil {
				return err
			}
			s.cache.Apply(tag, existing)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			merger := sync.NewMerger(s.repo, s.repo, s.cache, logger)
			result, err := merger.Merge(ctx, prompt, from, to)
			if err != nil {
				return err
			}

			if len(result.Committed) > 0 {
				color.New(color.Bold).Println("Added")
				printEvents(result.Committed)
			}
			if result.Conflicts > 0 {
				fmt.Printf("%d suggestion(s) skipped, slot already taken\n", result.Conflicts)
			}
			for _, o := range result.Outcomes {
				if o.Err != nil {
					color.New(color.FgRed).Printf("failed %s %s %q: %v\n", o.Suggestion.Date, o.Suggestion.Time, o.Suggestion.Text, o.Err)
				}
			}
			if len(result.Committed) == 0 && result.Conflicts == 0 && len(result.Outcomes) == 0 {
				fmt.Println("no suggestions")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start as YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end as YYYY-MM-DD")

	topLevel.AddCommand(cmd)
}
