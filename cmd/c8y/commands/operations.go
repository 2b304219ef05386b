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

// NewOperationsCommand creates the operations command group.
func NewOperationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"operation", "ops"},
		Short:   "Query device operations",
		Long:    "List and inspect operations sent to devices",
	}

	cmd.AddCommand(newOperationsListCommand())
	cmd.AddCommand(newOperationsGetCommand())

	return cmd
}

func newOperationsListCommand() *cobra.Command {
	var (
		paging   pageFlags
		deviceID string
		agentID  string
		status   string
		dateFrom string
		revert   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations",
		Long:  "List operations, optionally filtered by device, agent, and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDate(dateFrom, time.Now())
			if err != nil {
				return err
			}

			params := &c8y.OperationListParams{
				PageParams: paging.params(),
				DeviceID:   optional(deviceID),
				AgentID:    optional(agentID),
				DateFrom:   from,
				Revert:     optionalBool(cmd, "revert", revert),
			}

			if status != "" {
				operationStatus, err := parseOperationStatus(status)
				if err != nil {
					return err
				}

				params.Status = &operationStatus
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			operations, err := client.Operations().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list operations: %w", err)
			}

			return renderOutput(operations, func(table *tablewriter.Table) {
				appendOperations(table, operations.Operations)
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&deviceID, "device", "", "target device id")
	cmd.Flags().StringVar(&agentID, "agent", "", "agent id")
	cmd.Flags().StringVar(&status, "status", "", "PENDING, EXECUTING, SUCCESSFUL, or FAILED")
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "start time (RFC3339 or relative, e.g. -1h)")
	cmd.Flags().BoolVar(&revert, "revert", false, "newest first")

	return cmd
}

func newOperationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an operation",
		Long:  "Display a single operation with its fragments",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			operation, err := client.Operations().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get operation: %w", err)
			}

			return renderOutput(operation, func(table *tablewriter.Table) {
				appendOperations(table, []c8y.Operation{*operation})
			})
		},
	}
}

func parseOperationStatus(value string) (c8y.OperationStatus, error) {
	status := c8y.OperationStatus(strings.ToUpper(value))

	switch status {
	case c8y.OperationStatusPending, c8y.OperationStatusExecuting, c8y.OperationStatusSuccessful, c8y.OperationStatusFailed:
		return status, nil
	}

	return "", fmt.Errorf("%w: %s", constants.ErrInvalidStatus, value)
}

func appendOperations(table *tablewriter.Table, operations []c8y.Operation) {
	table.Header("ID", "Device", "Status", "Created", "Description")

	for _, operation := range operations {
		device := orNA(operation.DeviceID)
		if operation.DeviceName != "" {
			device = operation.DeviceName + " (" + operation.DeviceID + ")"
		}

		description := operation.Description
		if operation.Status == c8y.OperationStatusFailed && operation.FailureReason != "" {
			description += ": " + operation.FailureReason
		}

		_ = table.Append(operation.ID, device, string(operation.Status), formatTime(operation.CreationTime), truncate(description))
	}
}
