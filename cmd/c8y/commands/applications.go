package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewApplicationsCommand creates the applications command group.
func NewApplicationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps", "app"},
		Short:   "Manage applications",
		Long:    "List applications and inspect their versions",
	}

	cmd.AddCommand(newApplicationsListCommand())
	cmd.AddCommand(newApplicationsGetCommand())
	cmd.AddCommand(newApplicationsVersionsCommand())

	return cmd
}

func newApplicationsListCommand() *cobra.Command {
	var (
		paging pageFlags
		name   string
		typ    string
		owner  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Long:  "List the applications available to the tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := &c8y.ApplicationListParams{
				PageParams: paging.params(),
				Name:       optional(name),
				Owner:      optional(owner),
			}

			if typ != "" {
				params.Type = c8y.String(strings.ToUpper(typ))
			}

			applications, err := client.Applications().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list applications: %w", err)
			}

			return renderOutput(applications, func(table *tablewriter.Table) {
				appendApplications(table, applications.Applications)
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&typ, "type", "", "EXTERNAL, HOSTED, or MICROSERVICE")
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owning tenant")

	return cmd
}

func newApplicationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an application",
		Long:  "Display a single application",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			application, err := client.Applications().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get application: %w", err)
			}

			return renderOutput(application, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", application.ID)
				_ = table.Append("Name", application.Name)
				_ = table.Append("Key", orNA(application.Key))
				_ = table.Append("Type", orNA(application.Type))
				_ = table.Append("Availability", orNA(application.Availability))
				_ = table.Append("Context Path", orNA(application.ContextPath))
				_ = table.Append("Active Version", orNA(application.ActiveVersionID))

				if application.Owner != nil {
					_ = table.Append("Owner", application.Owner.Tenant.ID)
				}
			})
		},
	}
}

func newApplicationsVersionsCommand() *cobra.Command {
	var paging pageFlags

	cmd := &cobra.Command{
		Use:   "versions ID",
		Short: "List application versions",
		Long:  "List the uploaded versions of a hosted application or microservice",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := paging.params()

			versions, err := client.ApplicationVersions().List(ctx, args[0], &params)
			if err != nil {
				return fmt.Errorf("failed to list application versions: %w", err)
			}

			return renderOutput(versions, func(table *tablewriter.Table) {
				table.Header("Version", "Binary", "Tags")

				for _, version := range versions.ApplicationVersions {
					_ = table.Append(version.Version, orNA(version.BinaryID), strings.Join(version.Tags, ", "))
				}
			})
		},
	}

	paging.register(cmd)

	return cmd
}

func appendApplications(table *tablewriter.Table, applications []c8y.Application) {
	table.Header("ID", "Name", "Type", "Availability", "Context Path")

	for _, application := range applications {
		_ = table.Append(
			application.ID,
			application.Name,
			orNA(application.Type),
			orNA(application.Availability),
			orNA(application.ContextPath),
		)
	}
}
