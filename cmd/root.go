package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	// appName is the name of the application used in CLI usage output
	appName = "hub"
	// defaultConfigPath is where the config file is looked up when --config is not set
	defaultConfigPath = "./config/.config.yaml"
)

// version is stamped at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

// k holds the parsed command line flags
var k *koanf.Koanf

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "EU compliance hub: regulation applicability, fine exposure and readiness reports",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cobra.CheckErr(loadFlags(cmd))
		setupLogging(k.Bool("debug"), k.Bool("pretty"))
	},
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down gracefully...")
	}()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	k = koanf.New(".")

	rootCmd.PersistentFlags().String("config", defaultConfigPath, "config file location")
	rootCmd.PersistentFlags().Bool("pretty", false, "enable pretty (human readable) logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")
}

// loadFlags copies the flags of the executing command into k
func loadFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging sets the global zerolog level and, when pretty, a console writer on stderr
func setupLogging(debug, pretty bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
