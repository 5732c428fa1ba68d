// Package cli implements the calctl command tree. Every command talks
// to a running calendard instance over its HTTP API and drives the
// same cache, editor and merge machinery the interactive clients use.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/client"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/sync"
)

const defaultServer = "http://localhost:4000"

var serverURL string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calctl",
		Short: "Manage calendar events from the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	server := defaultServer
	if v := os.Getenv("CALCTL_SERVER"); v != "" {
		server = v
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", server, "calendard base URL")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addMonth(topLevel)
	addEvents(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addRm(topLevel)
	addSuggest(topLevel)
}

// session bundles the pieces most commands need. The logger is
// discarded; calctl reports through its own printers, not slog.
type session struct {
	repo   *client.Client
	cache  *sync.Cache
	editor *sync.Editor
}

func newSession() *session {
	repo := client.New(serverURL)
	cache := sync.NewCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &session{
		repo:   repo,
		cache:  cache,
		editor: sync.NewEditor(repo, cache, logger),
	}
}

func (s *session) controllerAt(year int, month time.Month) *sync.Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	at := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return sync.NewController(s.repo, s.cache, s.editor, logger, at)
}
