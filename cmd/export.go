package cmd

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sinks "github.com/deploymenttheory/go-opkeychain/internal/export"
	"github.com/deploymenttheory/go-opkeychain/pkg/app/export"
)

var (
	// Export destination (export command only)
	exportFormat string
	exportOut    string
	exportForce  bool

	// Recovery tuning, also settable as workers / skip_failed in config
	exportWorkers    int
	exportSkipFailed bool
)

var exportCmd = &cobra.Command{
	Use:   "export [keychain-path]",
	Short: "Decrypt every item into a file",
	Long: `Decrypt all items of a keychain and write them in one of the export
formats. The output holds plaintext secrets; it is created with mode 0600.

Examples:
  # Everything as JSON
  opkeychain export 1Password.agilekeychain --format json --out items.json

  # Into a SQLite database, keeping going past damaged items
  opkeychain export 1Password.cloudkeychain -f sqlite --out items.db --skip-failed

  # YAML to stdout
  opkeychain export 1Password.cloudkeychain -f yaml --out -`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", sinks.FormatJSON,
		"export format ("+strings.Join(sinks.Formats(), ", ")+")")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file, or - for stdout")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite an existing output file")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 4, "items decrypted in parallel")
	exportCmd.Flags().BoolVar(&exportSkipFailed, "skip-failed", false, "record failed items instead of aborting")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, keychainPath string) error {
	ctx := newAppContext(cmd)

	target, err := keychainTarget(keychainPath)
	if err != nil {
		return err
	}

	request := &export.Request{
		Target:     target,
		Format:     exportFormat,
		OutputPath: exportOut,
		Overwrite:  exportForce,
	}

	response, err := export.Handle(ctx, request)
	if err != nil {
		return err
	}

	// The export itself went to stdout, keep the summary off it
	if request.OutputPath == "-" {
		log.Info().Int("exported", response.Exported).Int("failed", response.Failed).Msg("export complete")
		return nil
	}
	if ctx.Quiet {
		return nil
	}
	return export.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
