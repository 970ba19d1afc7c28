package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-opkeychain/internal/config"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string

	// Global keychain flags
	configFile     string
	passphraseFile string
	kdfBackend     string
	ignoreHMAC     bool

	// settings is populated by PersistentPreRunE before any command runs
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "opkeychain",
	Short: "Read-only recovery tool for 1Password keychain exports",
	Long: `opkeychain unlocks exported 1Password keychains with their master
passphrase and recovers the items inside them.

Both container layouts are supported:
  .agilekeychain   legacy layout (encryptionKeys.js plus one file per item)
  .cloudkeychain   opdata01 layout (profile.js plus band files)

Nothing is ever written back to the keychain.

Commands:
  verify    Check the passphrase and summarise the keychain
  list      List item metadata
  show      Decrypt and print one item
  export    Decrypt every item into a json, yaml, cbor or sqlite file

The passphrase is read from --passphrase-file, then the OPKC_PASSPHRASE
environment variable (a .env file is honoured), then an interactive prompt.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var common *app.CommonError
		if errors.As(err, &common) {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", common.Code, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	flags.StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	flags.StringVar(&configFile, "config", "", "config file (default: opkeychain.yaml in ., ./config, $HOME/.opkeychain, /etc/opkeychain)")
	flags.StringVar(&passphraseFile, "passphrase-file", "", "read the master passphrase from this file")
	flags.StringVar(&kdfBackend, "kdf-backend", "auto", "PBKDF2 implementation (auto, reference, xcrypto)")
	flags.BoolVar(&ignoreHMAC, "ignore-hmac", false, "decrypt even when HMAC verification fails")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// initConfig loads .env, the config file and the environment, binds the flags that
// override them, and configures the global logger.
func initConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v := config.New()
	bindings := map[string]string{
		"output":      "output",
		"kdf_backend": "kdf-backend",
		"ignore_hmac": "ignore-hmac",
		"workers":     "workers",
		"skip_failed": "skip-failed",
	}
	for key, flag := range bindings {
		if err := bindFlag(v, cmd, key, flag); err != nil {
			return err
		}
	}

	loaded, err := config.Load(v, configFile)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid configuration", err)
	}
	settings = loaded

	setupLogging(loaded.LogLevel)
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("loaded config file")
	}
	return nil
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) error {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag --%s: %w", name, err)
	}
	return nil
}

// setupLogging points the global zerolog logger at stderr
func setupLogging(configured string) {
	level, err := zerolog.ParseLevel(strings.ToLower(configured))
	if err != nil || configured == "" {
		level = zerolog.InfoLevel
	}
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// newAppContext builds the application context from the loaded settings
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	if c := cmd.Context(); c != nil {
		ctx.Context = c
	}
	ctx.Logger = log.Logger
	ctx.Out = cmd.OutOrStdout()
	ctx.OutputFormat = settings.Output
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.KDFBackend = settings.KDFBackend
	ctx.IgnoreHMAC = settings.IgnoreHMAC
	ctx.Workers = settings.Workers
	ctx.SkipFailed = settings.SkipFailed

	if verbose {
		ctx.SetProgress(func(message string, percent int) {
			log.Debug().Int("percent", percent).Msg(message)
		})
	}
	return ctx
}

