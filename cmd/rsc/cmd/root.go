// Package cmd implements the rsc CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/rocketsource-go/internal/config"
	"github.com/donaldgifford/rocketsource-go/internal/telemetry"
	"github.com/donaldgifford/rocketsource-go/pkg/logger"
	"github.com/donaldgifford/rocketsource-go/pkg/rocketsource"
	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	v        *viper.Viper
	cfg      *config.Config
	logger   *slog.Logger
	client   *rocketsource.Client
	shutdown telemetry.ShutdownFunc

	setupTelemetry func(ctx context.Context, endpoint, serviceName string) (telemetry.ShutdownFunc, error)
}

// flushTimeout bounds the trace flush after a command returns.
const flushTimeout = 5 * time.Second

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	_, root := newCLI()
	return root
}

// Execute runs the root command.
func Execute() {
	c, root := newCLI()
	if err := c.execute(root); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// execute runs root and flushes pending traces whether or not the command
// failed. Cobra skips post-run hooks after a RunE error.
func (c *cli) execute(root *cobra.Command) error {
	err := root.Execute()
	c.flush()
	return err
}

func newCLI() (*cli, *cobra.Command) {
	c := &cli{v: viper.New(), setupTelemetry: telemetry.Setup}

	rootCmd := &cobra.Command{
		Use:   "rsc",
		Short: "CLI client for the RocketSource API",
		Long: "rsc is a command-line client for the RocketSource product-research API.\n" +
			"It lets you manage scans, convert product identifiers to and from\n" +
			"ASINs, and check inbound eligibility from the terminal.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (YAML)")
	flags.String("api-key", "", "RocketSource API key")
	flags.String("base-url", rocketsource.DefaultBaseURL, "API base URL")
	flags.Duration("timeout", rocketsource.DefaultTimeout, "time to wait for response headers")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("otlp-endpoint", "", "OTLP/gRPC endpoint for trace export")

	for _, name := range []string{
		"config", "api-key", "base-url", "timeout", "output", "log-level", "otlp-endpoint",
	} {
		cobra.CheckErr(c.v.BindPFlag(name, flags.Lookup(name)))
	}

	c.v.SetEnvPrefix("RSC")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd.AddCommand(
		c.scansCmd(),
		c.convertCmd(),
		c.eligibilityCmd(),
		c.marketplacesCmd(),
	)

	return c, rootCmd
}

// setup loads configuration, layers flags and environment over it, and
// builds the client.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	shutdown, err := c.setupTelemetry(cmd.Context(), cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	c.shutdown = shutdown

	c.client = rocketsource.New(cfg.ClientOptions(c.logger)...)
	return nil
}

// flush shuts telemetry down once. It is a no-op when setup never ran.
func (c *cli) flush() {
	if c.shutdown == nil {
		return
	}
	shutdown := c.shutdown
	c.shutdown = nil

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		c.logger.Warn("flushing traces", "error", err)
	}
}

func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := c.v.GetString("config"); path != "" {
		loaded, err := config.Read(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags set explicitly and RSC_* variables win over the file.
	if c.isSet(cmd, "api-key") {
		cfg.API.APIKey = c.v.GetString("api-key")
	}
	if c.isSet(cmd, "base-url") {
		cfg.API.BaseURL = c.v.GetString("base-url")
	}
	if c.isSet(cmd, "timeout") {
		cfg.API.Timeout = c.v.GetDuration("timeout")
	}
	if c.isSet(cmd, "log-level") {
		cfg.Logging.Level = c.v.GetString("log-level")
	}
	if c.isSet(cmd, "otlp-endpoint") {
		cfg.Telemetry.OTLPEndpoint = c.v.GetString("otlp-endpoint")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// isSet reports whether a flag was given or its RSC_* variable is present.
func (c *cli) isSet(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return true
	}
	_, ok := os.LookupEnv("RSC_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
	return ok
}

func (c *cli) jsonOutput() bool {
	return c.v.GetString("output") == "json"
}

func marketplaceFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "marketplace", "m", string(domain.MarketplaceUS), "marketplace code (US, UK, DE, ...)")
}

func parseMarketplace(s string) (domain.Marketplace, error) {
	m, ok := domain.ParseMarketplace(s)
	if !ok {
		return "", fmt.Errorf("unknown marketplace %q (run `rsc marketplaces` for the list)", s)
	}
	return m, nil
}

// formatError renders err with a hint for the typed API errors.
func formatError(err error) string {
	msg := "Error: " + err.Error()

	e, ok := rocketsource.AsError(err)
	if !ok {
		return msg
	}

	switch {
	case e.Kind == rocketsource.KindAuthentication:
		msg += "\nHint: check the API key (--api-key or RSC_API_KEY)."
	case e.Kind == rocketsource.KindAuthorization:
		msg += "\nHint: the API key is valid but its plan does not allow this operation."
	case e.Kind == rocketsource.KindRateLimit:
		if d, ok := e.RetryAfterDuration(); ok {
			msg += fmt.Sprintf("\nHint: rate limited, retry after %s.", d)
		} else {
			msg += "\nHint: rate limited, retry later."
		}
	case e.Kind == rocketsource.KindValidation:
		for _, field := range slices.Sorted(maps.Keys(e.FieldErrors)) {
			msg += fmt.Sprintf("\n  %s: %s", field, strings.Join(e.FieldErrors[field], "; "))
		}
	case errors.Is(e, rocketsource.ErrTimeout):
		msg += "\nHint: the request timed out, raise --timeout."
	}
	return msg
}

func writeOut(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
