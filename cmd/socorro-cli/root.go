// socorro-cli queries Mozilla's Socorro crash-stats service.
//
// Usage:
//
//	socorro-cli crash <crash-id|url> [--depth N] [--full] [--all-threads] [--modules]
//	socorro-cli search [--signature S] [--product P] [--days N] [--facet F]...
//	socorro-cli serve
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/padenot/socorro-cli/internal/output"
	"github.com/padenot/socorro-cli/internal/socorro"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags = struct {
	format     output.Format
	token      string
	baseURL    string
	configPath string
	timeout    time.Duration
	logLevel   string
	logFormat  string
}{
	format: output.Compact,
}

var rootCmd = &cobra.Command{
	Use:   "socorro-cli",
	Short: "Query Mozilla's Socorro crash reporting system",
	Long: `socorro-cli fetches processed crash reports and runs SuperSearch queries
against crash-stats.mozilla.org, printing token-efficient summaries.

Settings resolve as flag > environment > config file > default. The config
file lives at $XDG_CONFIG_HOME/socorro-cli/config.yaml unless --config or
SOCORRO_CLI_CONFIG points elsewhere.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: resolveSettings,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Var(&rootFlags.format, "format", "Output format: compact, json or markdown")
	pf.StringVar(&rootFlags.token, "token", "", "API token (env SOCORRO_API_TOKEN)")
	pf.StringVar(&rootFlags.baseURL, "base-url", socorro.DefaultBaseURL, "API root (env SOCORRO_API_URL)")
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file path (env SOCORRO_CLI_CONFIG)")
	pf.DurationVar(&rootFlags.timeout, "timeout", defaultTimeout, "HTTP request timeout")
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")
	_ = pf.MarkHidden("base-url")

	rootCmd.AddCommand(crashCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
