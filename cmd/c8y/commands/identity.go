package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewIdentityCommand creates the identity command group.
func NewIdentityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identity",
		Aliases: []string{"externalids"},
		Short:   "Query external ids",
		Long:    "Resolve external ids to managed objects and list the ids of a device",
	}

	cmd.AddCommand(newIdentityListCommand())
	cmd.AddCommand(newIdentityGetCommand())

	return cmd
}

func newIdentityListCommand() *cobra.Command {
	var paging pageFlags

	cmd := &cobra.Command{
		Use:   "list DEVICE_ID",
		Short: "List external ids of a managed object",
		Long:  "List all external ids registered for a managed object",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := paging.params()

			ids, err := client.ExternalIDs().List(ctx, args[0], &params)
			if err != nil {
				return fmt.Errorf("failed to list external ids: %w", err)
			}

			return renderOutput(ids, func(table *tablewriter.Table) {
				appendExternalIDs(table, ids.ExternalIDs)
			})
		},
	}

	paging.register(cmd)

	return cmd
}

func newIdentityGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TYPE EXTERNAL_ID",
		Short: "Resolve an external id",
		Long:  "Find the managed object registered under an external id",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			externalID, err := client.ExternalIDs().Get(ctx, args[0], args[1])
			if err != nil {
				if c8y.IsNotFound(err) {
					return fmt.Errorf("external id %s/%s is not registered: %w", args[0], args[1], err)
				}

				return fmt.Errorf("failed to get external id: %w", err)
			}

			return renderOutput(externalID, func(table *tablewriter.Table) {
				appendExternalIDs(table, []c8y.ExternalID{*externalID})
			})
		},
	}
}

func appendExternalIDs(table *tablewriter.Table, ids []c8y.ExternalID) {
	table.Header("Type", "External ID", "Managed Object")

	for _, id := range ids {
		_ = table.Append(id.Type, id.ExternalID, sourceName(id.ManagedObject))
	}
}
