package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewMeasurementsCommand creates the measurements command group.
func NewMeasurementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measurements",
		Aliases: []string{"measurement", "m"},
		Short:   "Query measurements",
		Long:    "List measurements and aggregated measurement series",
	}

	cmd.AddCommand(newMeasurementsListCommand())
	cmd.AddCommand(newMeasurementsSeriesCommand())

	return cmd
}

func newMeasurementsListCommand() *cobra.Command {
	var (
		paging   pageFlags
		source   string
		typ      string
		dateFrom string
		dateTo   string
		revert   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List measurements",
		Long:  "List measurements, newest last unless --revert is set",
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

			measurements, err := client.Measurements().List(ctx, &c8y.MeasurementListParams{
				PageParams: paging.params(),
				Source:     optional(source),
				Type:       optional(typ),
				DateFrom:   from,
				DateTo:     to,
				Revert:     optionalBool(cmd, "revert", revert),
			})
			if err != nil {
				return fmt.Errorf("failed to list measurements: %w", err)
			}

			return renderOutput(measurements, func(table *tablewriter.Table) {
				table.Header("ID", "Source", "Type", "Time", "Values")

				for _, measurement := range measurements.Measurements {
					_ = table.Append(
						measurement.ID,
						sourceName(measurement.Source),
						orNA(measurement.Type),
						formatTime(measurement.Time),
						truncate(measurementValues(&measurement)),
					)
				}
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&source, "device", "", "source managed object id")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type")
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "start time (RFC3339 or relative, e.g. -1h)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "end time (RFC3339 or relative)")
	cmd.Flags().BoolVar(&revert, "revert", false, "newest first")

	return cmd
}

// measurementValues renders the series of a measurement as
// "fragment.series=value unit" pairs sorted by name.
func measurementValues(measurement *c8y.Measurement) string {
	var values []string

	for fragment := range measurement.Fragments {
		var series map[string]c8y.MeasurementValue

		if measurement.Fragments.Get(fragment, &series) != nil {
			continue
		}

		for name := range series {
			value, err := measurement.Value(fragment, name)
			if err != nil {
				continue
			}

			text := fmt.Sprintf("%s.%s=%s", fragment, name, strconv.FormatFloat(value.Value, 'f', -1, 64))
			if value.Unit != "" {
				text += " " + value.Unit
			}

			values = append(values, text)
		}
	}

	sort.Strings(values)

	return strings.Join(values, ", ")
}

func newMeasurementsSeriesCommand() *cobra.Command {
	var (
		dateFrom    string
		dateTo      string
		series      []string
		aggregation string
	)

	cmd := &cobra.Command{
		Use:   "series DEVICE_ID",
		Short: "Get measurement series",
		Long:  "Get aggregated min and max values of measurement series for a device",
		Args:  cobra.ExactArgs(constants.OneArgument),
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

			if to == nil {
				to = &now
			}

			params := &c8y.MeasurementSeriesParams{
				Source:   args[0],
				DateFrom: *from,
				DateTo:   *to,
				Series:   series,
			}

			if aggregation != "" {
				aggregationType := c8y.AggregationType(strings.ToUpper(aggregation))
				params.AggregationType = &aggregationType
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Measurements().Series(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to get measurement series: %w", err)
			}

			return renderOutput(result, func(table *tablewriter.Table) {
				appendSeries(table, result)
			})
		},
	}

	cmd.Flags().StringVar(&dateFrom, "date-from", "-24h", "start time (RFC3339 or relative, e.g. -1h)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "end time (RFC3339 or relative), defaults to now")
	cmd.Flags().StringSliceVar(&series, "series", nil, "series to fetch as fragment.series")
	cmd.Flags().StringVar(&aggregation, "aggregation", "", "DAILY, HOURLY, or MINUTELY")

	return cmd
}

func appendSeries(table *tablewriter.Table, result *c8y.MeasurementSeries) {
	header := []any{"Time"}
	for _, definition := range result.Series {
		header = append(header, definition.Type+"."+definition.Name)
	}

	table.Header(header...)

	times := make([]string, 0, len(result.Values))
	for timestamp := range result.Values {
		times = append(times, timestamp)
	}

	sort.Strings(times)

	for _, timestamp := range times {
		row := []string{timestamp}

		for _, value := range result.Values[timestamp] {
			if value == nil {
				row = append(row, constants.NotAvailable)

				continue
			}

			row = append(row, fmt.Sprintf("%g / %g", value.Min, value.Max))
		}

		_ = table.Append(row)
	}
}
