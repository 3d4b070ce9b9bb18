// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/share-mixer/export"
	"github.com/danielhkuo/share-mixer/shares"
	"github.com/danielhkuo/share-mixer/stats"
)

func newPollsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "polls",
		Short: "List poll definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			active := opts.svc.ActivePollID(ctx)
			for _, p := range opts.svc.Polls(ctx) {
				marker := " "
				if p.ID == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-38s %s (%d categories)\n", marker, p.ID, p.Title, len(p.Categories))
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <title> <id:label[:#rrggbb]>...",
			Short: "Create a poll definition",
			Example: `  sharectl polls create "Referendum" yes:Yes no:No undecided:Undecided:#64748b`,
			Args: cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				categories, err := parseCategories(args[1:])
				if err != nil {
					return err
				}
				poll, err := opts.svc.CreatePoll(cmd.Context(), args[0], categories)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", poll.ID, poll.Title)
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <id>",
			Short: "Select the active poll",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := opts.svc.SetActivePoll(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "active poll: %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a poll definition and its shares",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := opts.svc.DeletePoll(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var compare bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.show(cmd, compare)
		},
	}
	cmd.Flags().BoolVar(&compare, "compare", false, "overlay the baseline")
	return cmd
}

func newSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <value>",
		Short: "Set one category (clamped to what is left)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			if _, err := opts.svc.SetShare(cmd.Context(), opts.poll(cmd.Context()), args[0], value); err != nil {
				return err
			}
			return opts.show(cmd, false)
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Set every category to 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.svc.Reset(cmd.Context(), opts.poll(cmd.Context())); err != nil {
				return err
			}
			return opts.show(cmd, false)
		},
	}
}

func newNormalizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Scale the shares to exactly 100",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.svc.Normalize(cmd.Context(), opts.poll(cmd.Context())); err != nil {
				return err
			}
			return opts.show(cmd, false)
		},
	}
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the live shares as the baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.svc.Snapshot(cmd.Context(), opts.poll(cmd.Context()), label); err != nil {
				return err
			}
			return opts.show(cmd, true)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "baseline label (default: keep the current one)")
	return cmd
}

func newClearBaselineCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-baseline",
		Short: "Remove the baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.svc.ClearBaseline(cmd.Context(), opts.poll(cmd.Context())); err != nil {
				return err
			}
			return opts.show(cmd, false)
		},
	}
}

func newLabelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "label <text>",
		Short: "Rename the baseline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := opts.svc.SetBaselineLabel(cmd.Context(), opts.poll(cmd.Context()), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "baseline label: %s\n", label)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		out     string
		compare bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.svc.State(cmd.Context(), opts.poll(cmd.Context()), compare)
			if err != nil {
				return err
			}
			path, err := export.Save(out, state, time.Now())
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", ".", "output directory")
	cmd.Flags().BoolVar(&compare, "compare", false, "include the baseline bars")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		proxy     string
		channelID string
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show channel subscriber stats",
		Long: `Fetches channel statistics once, either through a running server's
/api/youtube-subs endpoint (--proxy) or directly with YT_API_KEY.`,
		Args: cobra.NoArgs,
		// no database needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			var fetcher stats.Fetcher
			if proxy != "" {
				fetcher = stats.NewProxyClient(proxy, nil)
			} else {
				fetcher = stats.NewClient(envOr("YT_API_BASE", stats.DefaultBaseURL), os.Getenv("YT_API_KEY"), nil)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			badge := stats.NewBadge(ctx, fetcher, channelID)
			defer badge.Close()

			reading, ok := badge.Wait(ctx)
			if !ok {
				return errors.New("timed out waiting for channel stats")
			}
			if reading.Title != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ", reading.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reading.Text())
			return nil
		},
	}
	cmd.Flags().StringVar(&proxy, "proxy", "", "share-mixer server URL")
	cmd.Flags().StringVar(&channelID, "channel", envOr("YT_CHANNEL_ID", stats.DefaultChannelID), "channel id")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "fetch timeout")
	return cmd
}

func (o *options) show(cmd *cobra.Command, compare bool) error {
	state, err := o.svc.State(cmd.Context(), o.poll(cmd.Context()), compare)
	if err != nil {
		return err
	}
	renderState(cmd.OutOrStdout(), state)
	return nil
}

// parseCategories reads id:label[:color] arguments.
func parseCategories(args []string) ([]shares.Category, error) {
	categories := make([]shares.Category, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("category %q: want id:label[:#rrggbb]", arg)
		}
		c := shares.Category{ID: parts[0], Label: parts[1]}
		if len(parts) == 3 {
			c.Color = parts[2]
		}
		categories = append(categories, c)
	}
	return categories, nil
}
