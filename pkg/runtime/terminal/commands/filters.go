package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/spf13/cobra"
)

type FiltersCmd struct {
	brand    string
	source   client.ReportSource
	brands   config.BrandRegistry
	reporter *export.Reporter
}

func NewFiltersCmd(source client.ReportSource, brands config.BrandRegistry, reporter *export.Reporter) *cobra.Command {
	fc := &FiltersCmd{source: source, brands: brands, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the filter options of a brand",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.brand, "brand", "", "Brand code (e.g., nine)")

	_ = cmd.MarkFlagRequired("brand")

	return cmd
}

func (fc *FiltersCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	brand, ok := fc.brands.Lookup(fc.brand)
	if !ok {
		return fmt.Errorf("invalid brand %q", fc.brand)
	}

	resp, err := fc.source.Filters(ctx, brand.Code)
	if err != nil {
		return fmt.Errorf("failed to load filter options for %s: %w", brand.Code, err)
	}

	return fc.reporter.Filters(brand, adapters.MapFiltersApiToDomain(resp))
}
