package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	var withParent bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display tenant information",
		Long:  "Display the tenant and user of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			tenant, err := client.CurrentTenant().Get(ctx, &c8y.CurrentTenantParams{
				WithParent: optionalBool(cmd, "with-parent", withParent),
			})
			if err != nil {
				return fmt.Errorf("failed to get current tenant: %w", err)
			}

			type Info struct {
				URL    string             `json:"url"    yaml:"url"`
				Tenant *c8y.CurrentTenant `json:"tenant" yaml:"tenant"`
			}

			info := Info{URL: client.BaseURL(), Tenant: tenant}

			return renderOutput(info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("URL", client.BaseURL())
				_ = table.Append("Tenant", tenant.Name)
				_ = table.Append("Domain", tenant.DomainName)
				_ = table.Append("Parent", orNA(tenant.Parent))
				_ = table.Append("Applications", subscribedApplications(tenant))
			})
		},
	}

	cmd.Flags().BoolVar(&withParent, "with-parent", false, "include the parent tenant")

	return cmd
}

func subscribedApplications(tenant *c8y.CurrentTenant) string {
	if tenant.Applications == nil || len(tenant.Applications.References) == 0 {
		return orNA("")
	}

	names := make([]string, 0, len(tenant.Applications.References))
	for _, ref := range tenant.Applications.References {
		names = append(names, ref.Application.Name)
	}

	return truncate(strings.Join(names, ", "))
}
