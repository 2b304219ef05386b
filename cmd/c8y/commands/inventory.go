package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// NewInventoryCommand creates the inventory command group.
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv", "devices"},
		Short:   "Manage managed objects",
		Long:    "List, inspect, and delete inventory managed objects",
	}

	cmd.AddCommand(newInventoryListCommand())
	cmd.AddCommand(newInventoryGetCommand())
	cmd.AddCommand(newInventoryDeleteCommand())
	cmd.AddCommand(newInventoryChildrenCommand())

	return cmd
}

func newInventoryListCommand() *cobra.Command {
	var (
		paging       pageFlags
		objectType   string
		fragmentType string
		text         string
		query        string
		onlyDevices  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managed objects",
		Long:  "List managed objects, optionally filtered by type, fragment, or query",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if onlyDevices && fragmentType == "" {
				fragmentType = "c8y_IsDevice"
			}

			params := &c8y.ManagedObjectListParams{
				PageParams:   paging.params(),
				Type:         optional(objectType),
				FragmentType: optional(fragmentType),
				Text:         optional(text),
				Query:        optional(query),
			}

			objects, err := client.ManagedObjects().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list managed objects: %w", err)
			}

			return renderOutput(objects, func(table *tablewriter.Table) {
				appendManagedObjects(table, objects.ManagedObjects)
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&objectType, "type", "", "filter by type")
	cmd.Flags().StringVar(&fragmentType, "fragment-type", "", "filter by fragment type")
	cmd.Flags().StringVar(&text, "text", "", "filter by text")
	cmd.Flags().StringVar(&query, "query", "", "inventory query language expression")
	cmd.Flags().BoolVar(&onlyDevices, "devices", false, "only list devices")

	return cmd
}

func newInventoryGetCommand() *cobra.Command {
	var withParents bool

	cmd := &cobra.Command{
		Use:   "get ID...",
		Short: "Get managed objects",
		Long:  "Fetch one or more managed objects by id",
		Args:  cobra.MinimumNArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := &c8y.ManagedObjectGetParams{
				WithParents: optionalBool(cmd, "with-parents", withParents),
			}

			objects, err := getManagedObjects(ctx, client.ManagedObjects(), args, params)
			if err != nil {
				return err
			}

			var data interface{} = objects
			if len(objects) == 1 {
				data = objects[0]
			}

			return renderOutput(data, func(table *tablewriter.Table) {
				appendManagedObjects(table, objects)
			})
		},
	}

	cmd.Flags().BoolVar(&withParents, "with-parents", false, "include parent references")

	return cmd
}

// getManagedObjects fetches ids concurrently and returns them in argument
// order.
func getManagedObjects(ctx context.Context, objects c8y.ManagedObjectsClient, ids []string, params *c8y.ManagedObjectGetParams) ([]c8y.ManagedObject, error) {
	results := make([]c8y.ManagedObject, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.DefaultConcurrencyLimit)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			object, err := objects.Get(groupCtx, id, params)
			if err != nil {
				return fmt.Errorf("failed to get managed object %s: %w", id, err)
			}

			results[i] = *object

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func newInventoryDeleteCommand() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a managed object",
		Long:  "Delete a managed object and optionally its children",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := &c8y.ManagedObjectDeleteParams{
				Cascade: optionalBool(cmd, "cascade", cascade),
			}

			err = client.ManagedObjects().Delete(ctx, args[0], params)
			if err != nil {
				return fmt.Errorf("failed to delete managed object: %w", err)
			}

			fmt.Printf("Deleted managed object %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "also delete child devices and assets")

	return cmd
}

func newInventoryChildrenCommand() *cobra.Command {
	var (
		paging pageFlags
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "children ID",
		Short: "List child references",
		Long:  "List the child devices, assets, or additions of a managed object",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			childKind := c8y.ChildKind(kind)
			if !childKind.Valid() {
				return fmt.Errorf("%w: %s", constants.ErrInvalidChildKind, kind)
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			references, err := client.ChildReferences().List(ctx, args[0], childKind, &c8y.ChildReferenceListParams{
				PageParams: paging.params(),
			})
			if err != nil {
				return fmt.Errorf("failed to list child references: %w", err)
			}

			return renderOutput(references, func(table *tablewriter.Table) {
				children := make([]c8y.ManagedObject, 0, len(references.References))
				for _, ref := range references.References {
					children = append(children, ref.ManagedObject)
				}

				appendManagedObjects(table, children)
			})
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", string(c8y.ChildDevices), "childDevices, childAssets, or childAdditions")

	return cmd
}

func appendManagedObjects(table *tablewriter.Table, objects []c8y.ManagedObject) {
	table.Header("ID", "Name", "Type", "Device", "Last Updated")

	for _, object := range objects {
		device := "no"
		if object.IsDevice() {
			device = "yes"
		}

		_ = table.Append(object.ID, orNA(object.Name), orNA(object.Type), device, formatTime(object.LastUpdated))
	}
}
