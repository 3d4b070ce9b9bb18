// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command sharectl drives the share mixer from a terminal against the same
// database the server uses.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/share-mixer/db"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/store"
)

// options holds the global flags and the service opened for a command.
type options struct {
	dbURL  string
	dbType string
	pollID string

	svc   *mixer.Service
	store *store.SQLStore
}

func main() {
	os.Exit(exitCode(os.Args[1:], os.Stdout))
}

// exitCode runs sharectl with signal handling and returns the process exit
// status. Deferred cleanup has finished by the time it returns.
func exitCode(args []string, out io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args, out); err != nil {
		return 1
	}
	return 0
}

// run executes one sharectl invocation and closes the database afterwards,
// whether or not the command succeeded.
func run(ctx context.Context, args []string, out io.Writer) error {
	opts := &options{}
	defer opts.close()

	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(opts *options) *cobra.Command {

	root := &cobra.Command{
		Use:   "sharectl",
		Short: "Terminal share mixer",
		Long: `sharectl edits poll shares stored by the share-mixer server.

Every value is clamped to [0, 100] with one decimal and the total never
goes past 100. Commands act on the active poll unless --poll is given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.open()
		},
	}

	root.PersistentFlags().StringVar(&opts.dbURL, "db", envOr("DATABASE_URL", "sharemix.db"), "sqlite path or postgres URL")
	root.PersistentFlags().StringVar(&opts.dbType, "db-type", envOr("DATABASE_TYPE", db.TypeSQLite), "database type (sqlite or postgres)")
	root.PersistentFlags().StringVar(&opts.pollID, "poll", "", "poll id (default: active poll)")

	root.AddCommand(
		newPollsCmd(opts),
		newShowCmd(opts),
		newSetCmd(opts),
		newResetCmd(opts),
		newNormalizeCmd(opts),
		newSnapshotCmd(opts),
		newClearBaselineCmd(opts),
		newLabelCmd(opts),
		newExportCmd(opts),
		newStatsCmd(),
	)
	return root
}

func (o *options) open() error {
	conn, err := db.New(o.dbType, o.dbURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	o.store = store.NewSQLStore(conn)
	o.svc = mixer.New(o.store)
	return nil
}

func (o *options) close() {
	if o.store == nil {
		return
	}
	if err := o.store.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
	o.store = nil
}

// poll returns the poll the command acts on.
func (o *options) poll(ctx context.Context) string {
	if o.pollID != "" {
		return o.pollID
	}
	return o.svc.ActivePollID(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
