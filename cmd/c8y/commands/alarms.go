package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewAlarmsCommand creates the alarms command group.
func NewAlarmsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alarms",
		Aliases: []string{"alarm"},
		Short:   "Query alarms",
		Long:    "List and count device alarms",
	}

	cmd.AddCommand(newAlarmsListCommand())
	cmd.AddCommand(newAlarmsCountCommand())

	return cmd
}

// alarmFilterFlags are the flags shared by the alarm commands.
type alarmFilterFlags struct {
	source   string
	status   []string
	severity []string
	types    []string
	dateFrom string
	dateTo   string
}

func (f *alarmFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "device", "", "source managed object id")
	cmd.Flags().StringSliceVar(&f.status, "status", nil, "ACTIVE, ACKNOWLEDGED, or CLEARED")
	cmd.Flags().StringSliceVar(&f.severity, "severity", nil, "CRITICAL, MAJOR, MINOR, or WARNING")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "filter by type")
	cmd.Flags().StringVar(&f.dateFrom, "date-from", "", "start time (RFC3339 or relative, e.g. -1h)")
	cmd.Flags().StringVar(&f.dateTo, "date-to", "", "end time (RFC3339 or relative)")
}

func (f *alarmFilterFlags) filter(now time.Time) (*c8y.AlarmFilter, error) {
	from, err := parseDate(f.dateFrom, now)
	if err != nil {
		return nil, err
	}

	to, err := parseDate(f.dateTo, now)
	if err != nil {
		return nil, err
	}

	filter := &c8y.AlarmFilter{
		Source:   optional(f.source),
		Type:     f.types,
		DateFrom: from,
		DateTo:   to,
	}

	for _, value := range f.status {
		status := c8y.AlarmStatus(strings.ToUpper(value))

		switch status {
		case c8y.AlarmStatusActive, c8y.AlarmStatusAcknowledged, c8y.AlarmStatusCleared:
			filter.Status = append(filter.Status, status)
		default:
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidStatus, value)
		}
	}

	for _, value := range f.severity {
		severity := c8y.AlarmSeverity(strings.ToUpper(value))

		switch severity {
		case c8y.AlarmSeverityCritical, c8y.AlarmSeverityMajor, c8y.AlarmSeverityMinor, c8y.AlarmSeverityWarning:
			filter.Severity = append(filter.Severity, severity)
		default:
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidSeverity, value)
		}
	}

	return filter, nil
}

func newAlarmsListCommand() *cobra.Command {
	var (
		paging  pageFlags
		filters alarmFilterFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alarms",
		Long:  "List alarms, optionally filtered by device, status, and severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filters.filter(time.Now())
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			alarms, err := client.Alarms().List(ctx, &c8y.AlarmListParams{
				PageParams:  paging.params(),
				AlarmFilter: *filter,
			})
			if err != nil {
				return fmt.Errorf("failed to list alarms: %w", err)
			}

			return renderOutput(alarms, func(table *tablewriter.Table) {
				table.Header("ID", "Source", "Severity", "Status", "Count", "Time", "Text")

				for _, alarm := range alarms.Alarms {
					_ = table.Append(
						alarm.ID,
						sourceName(alarm.Source),
						string(alarm.Severity),
						string(alarm.Status),
						fmt.Sprintf("%d", alarm.Count),
						formatTime(alarm.Time),
						truncate(alarm.Text),
					)
				}
			})
		},
	}

	paging.register(cmd)
	filters.register(cmd)

	return cmd
}

func newAlarmsCountCommand() *cobra.Command {
	var filters alarmFilterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count alarms",
		Long:  "Count the alarms matching the given filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filters.filter(time.Now())
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			count, err := client.Alarms().Count(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to count alarms: %w", err)
			}

			type AlarmCount struct {
				Count int `json:"count" yaml:"count"`
			}

			return renderOutput(AlarmCount{Count: count}, func(table *tablewriter.Table) {
				table.Header("Count")
				_ = table.Append(fmt.Sprintf("%d", count))
			})
		},
	}

	filters.register(cmd)

	return cmd
}
