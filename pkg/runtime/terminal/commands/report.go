package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

var reportViews = map[string]string{
	"warehouse": dashboard.ViewWarehouse,
	"item":      dashboard.ViewItem,
}

type ReportCmd struct {
	brand      string
	warehouses []string
	categories []string
	mainYear   string
	compYear   string
	startMonth string
	endMonth   string
	open       []string
	search     string
	chartPath  string
	timeout    time.Duration

	boards   *dashboard.Manager
	brands   config.BrandRegistry
	reporter *export.Reporter
}

func NewReportCmd(boards *dashboard.Manager, brands config.BrandRegistry, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{boards: boards, brands: brands, reporter: reporter}
	cmd := &cobra.Command{
		Use:       "report [warehouse|item]",
		Short:     "Print a sales report as a table",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"warehouse", "item"},
		RunE:      rc.run,
	}

	cmd.Flags().StringVar(&rc.brand, "brand", "", "Brand code (e.g., nine)")
	cmd.Flags().StringArrayVar(&rc.warehouses, "warehouse", nil, "Warehouse to include, repeatable")
	cmd.Flags().StringArrayVar(&rc.categories, "category", nil, "Category to include, repeatable")
	cmd.Flags().StringVar(&rc.mainYear, "main-year", "", "Year to report")
	cmd.Flags().StringVar(&rc.compYear, "comp-year", "", "Year to compare with (warehouse report only)")
	cmd.Flags().StringVar(&rc.startMonth, "start-month", "", "First month (MM)")
	cmd.Flags().StringVar(&rc.endMonth, "end-month", "", "Last month (MM)")
	cmd.Flags().StringArrayVar(&rc.open, "open", nil, "Row id to toggle open, repeatable and applied in order")
	cmd.Flags().StringVar(&rc.search, "search", "", "Item search term (item report only)")
	cmd.Flags().StringVar(&rc.chartPath, "chart", "", "Write the chart as SVG to this path")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 60*time.Second, "Time limit for fetching the report")

	_ = cmd.MarkFlagRequired("brand")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	brand, ok := rc.brands.Lookup(rc.brand)
	if !ok {
		return fmt.Errorf("invalid brand %q", rc.brand)
	}

	kind := "warehouse"
	if len(args) > 0 {
		kind = args[0]
	}

	d, err := rc.boards.Create(ctx, brand.Code, reportViews[kind])
	if err != nil {
		return fmt.Errorf("failed to create %s report: %w", kind, err)
	}

	selection := filter.Filters{
		Warehouses: rc.warehouses,
		Categories: rc.categories,
		MainYear:   rc.mainYear,
		CompYear:   rc.compYear,
		StartMonth: rc.startMonth,
		EndMonth:   rc.endMonth,
	}
	if err := d.Load(ctx, selection); err != nil {
		if status := d.Board.Status(); status.State == report.StateFailed {
			return errors.New(status.Message)
		}
		return err
	}

	for _, id := range rc.open {
		if _, handled, err := d.Board.Dispatch(report.Target{Row: id, Cell: -1}); err != nil {
			return fmt.Errorf("failed to open row %q: %w", id, err)
		} else if !handled {
			return fmt.Errorf("row %q cannot be opened", id)
		}
	}

	if rc.search != "" {
		if err := d.Board.Search(rc.search); err != nil {
			return fmt.Errorf("failed to search %q: %w", rc.search, err)
		}
	}

	table, ok := d.Board.Table()
	if !ok {
		return fmt.Errorf("no report loaded")
	}
	if err := rc.reporter.Handle(table, d.Board.Rows()); err != nil {
		return err
	}
	if d.Board.View().Searchable {
		if err := rc.reporter.Ranking(chart.Ranking(d.Board.Report().Series)); err != nil {
			return err
		}
	}

	if rc.chartPath != "" {
		return writeChart(rc.chartPath, d.Board.Charts())
	}
	return nil
}

func writeChart(path string, charts *chart.Holder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := charts.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
