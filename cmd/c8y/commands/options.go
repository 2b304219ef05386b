package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewOptionsCommand creates the tenant options command group.
func NewOptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "options",
		Aliases: []string{"option"},
		Short:   "Manage tenant options",
		Long:    "List, read, and write tenant options",
	}

	cmd.AddCommand(newOptionsListCommand())
	cmd.AddCommand(newOptionsGetCommand())
	cmd.AddCommand(newOptionsSetCommand())

	return cmd
}

func newOptionsListCommand() *cobra.Command {
	var paging pageFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenant options",
		Long:  "List the options of the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := paging.params()

			options, err := client.TenantOptions().List(ctx, &params)
			if err != nil {
				return fmt.Errorf("failed to list tenant options: %w", err)
			}

			return renderOutput(options, func(table *tablewriter.Table) {
				appendTenantOptions(table, options.Options)
			})
		},
	}

	paging.register(cmd)

	return cmd
}

func newOptionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CATEGORY KEY",
		Short: "Get a tenant option",
		Long:  "Display the value of a tenant option",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			option, err := client.TenantOptions().Get(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get tenant option: %w", err)
			}

			return renderOutput(option, func(table *tablewriter.Table) {
				appendTenantOptions(table, []c8y.TenantOption{*option})
			})
		},
	}
}

func newOptionsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set CATEGORY KEY VALUE",
		Short: "Set a tenant option",
		Long:  "Update a tenant option, creating it when it does not exist",
		Args:  cobra.ExactArgs(constants.ThreeArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			option, err := client.TenantOptions().Update(ctx, args[0], args[1], &c8y.TenantOptionUpdate{Value: args[2]})
			if c8y.IsNotFound(err) {
				option, err = client.TenantOptions().Create(ctx, &c8y.TenantOptionCreate{
					Category: args[0],
					Key:      args[1],
					Value:    args[2],
				})
			}

			if err != nil {
				return fmt.Errorf("failed to set tenant option: %w", err)
			}

			return renderOutput(option, func(table *tablewriter.Table) {
				appendTenantOptions(table, []c8y.TenantOption{*option})
			})
		},
	}
}

func appendTenantOptions(table *tablewriter.Table, options []c8y.TenantOption) {
	table.Header("Category", "Key", "Value")

	for _, option := range options {
		_ = table.Append(option.Category, option.Key, truncate(option.Value))
	}
}
