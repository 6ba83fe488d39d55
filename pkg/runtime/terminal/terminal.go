package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	boards   *dashboard.Manager
	source   client.ReportSource
	brands   config.BrandRegistry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Boards *dashboard.Manager
	Source client.ReportSource
	Brands config.BrandRegistry
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		boards:   opts.Boards,
		source:   opts.Source,
		brands:   opts.Brands,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sales-atlas",
		Short:        "Sales report tool",
		SilenceUsage: true,
	}

	cmd.AddCommand(commands.NewReportCmd(cli.boards, cli.brands, cli.reporter))
	cmd.AddCommand(commands.NewFiltersCmd(cli.source, cli.brands, cli.reporter))

	return cmd
}
