package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Query events",
		Long:    "List and inspect device events",
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsGetCommand())

	return cmd
}

func newEventsListCommand() *cobra.Command {
	var (
		paging       pageFlags
		source       string
		typ          string
		fragmentType string
		dateFrom     string
		dateTo       string
		revert       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long:  "List events, optionally filtered by device, type, and time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			from, err := parseDate(dateFrom, now)
			if err != nil {
				return err
			}

			to, err := parseDate(dateTo, now)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			events, err := client.Events().List(ctx, &c8y.EventListParams{
				PageParams:   paging.params(),
				Source:       optional(source),
				Type:         optional(typ),
				FragmentType: optional(fragmentType),
				DateFrom:     from,
				DateTo:       to,
				Revert:       optionalBool(cmd, "revert", revert),
			})
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			return renderOutput(events, func(table *tablewriter.Table) {
				appendEvents(table, events.Events)
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&source, "device", "", "source managed object id")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type")
	cmd.Flags().StringVar(&fragmentType, "fragment-type", "", "filter by fragment type")
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "start time (RFC3339 or relative, e.g. -1h)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "end time (RFC3339 or relative)")
	cmd.Flags().BoolVar(&revert, "revert", false, "newest first")

	return cmd
}

func newEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an event",
		Long:  "Display a single event with its fragments",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			event, err := client.Events().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			return renderOutput(event, func(table *tablewriter.Table) {
				appendEvents(table, []c8y.Event{*event})
			})
		},
	}
}

func appendEvents(table *tablewriter.Table, events []c8y.Event) {
	table.Header("ID", "Source", "Type", "Time", "Text")

	for _, event := range events {
		_ = table.Append(event.ID, sourceName(event.Source), orNA(event.Type), formatTime(event.Time), truncate(event.Text))
	}
}
