package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// pageFlags are the paging flags shared by list commands.
type pageFlags struct {
	pageSize    int
	currentPage int
	withTotal   bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.pageSize, "page-size", constants.StandardPageSize, "results per page")
	cmd.Flags().IntVar(&f.currentPage, "page", 0, "page to fetch")
	cmd.Flags().BoolVar(&f.withTotal, "with-total", false, "include the total page count")
}

func (f *pageFlags) params() c8y.PageParams {
	params := c8y.PageParams{}

	if f.pageSize > 0 {
		params.PageSize = c8y.Int(min(f.pageSize, constants.MaxPageSize))
	}

	if f.currentPage > 0 {
		params.CurrentPage = c8y.Int(f.currentPage)
	}

	if f.withTotal {
		params.WithTotalPages = &f.withTotal
	}

	return params
}

// optional returns nil for an unset flag value.
func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return &value
}

func sourceName(ref c8y.ObjectRef) string {
	if ref.Name != "" {
		return ref.Name + " (" + ref.ID + ")"
	}

	return orNA(ref.ID)
}
