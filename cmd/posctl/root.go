package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/bootstrap"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/logger"
	"github.com/rl1809/storefront/internal/port"
	"github.com/rl1809/storefront/internal/shutdown"
)

const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// cli holds the storefront opened for a single command invocation.
type cli struct {
	format  string
	verbose bool

	storefront *service.Storefront
	kv         port.KeyValueStore
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	c := &cli{}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Operate the storefront against its local store",
		Long:          "posctl reads and changes the catalog, the active cart and the transaction log\nstored by the storefront server, using the same configuration.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: c.open,
	}

	f := root.PersistentFlags()
	f.StringVar(&c.format, "format", formatTable, "output format: table, markdown or json")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		c.productsCmd(),
		c.cartCmd(),
		c.checkoutCmd(),
		c.transactionsCmd(),
		c.reportCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	switch c.format {
	case formatTable, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if c.verbose {
		level = cfg.LogLevel
	}
	log := logger.New(logger.Options{Service: "posctl", Env: cfg.AppEnv, Level: level, Output: cmd.ErrOrStderr()})

	sf, kv, err := bootstrap.OpenStorefront(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("open storefront: %w", err)
	}
	c.storefront, c.kv = sf, kv
	return nil
}

func (c *cli) close() {
	if c.kv == nil {
		return
	}
	if err := c.kv.Close(); err != nil {
		slog.Warn("close store", slog.Any("err", err))
	}
	c.kv = nil
}
