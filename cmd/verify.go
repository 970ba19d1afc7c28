package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-opkeychain/pkg/app/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [keychain-path]",
	Short: "Check the passphrase and summarise a keychain",
	Long: `Unlock a keychain without decrypting any item payloads. Exits non-zero
when the passphrase is wrong or the keychain fails integrity checks.

Examples:
  opkeychain verify ~/Dropbox/1Password.agilekeychain
  OPKC_PASSPHRASE=fred opkeychain verify sample.cloudkeychain -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, keychainPath string) error {
	ctx := newAppContext(cmd)

	target, err := keychainTarget(keychainPath)
	if err != nil {
		return err
	}

	response, err := verify.Handle(ctx, &verify.Request{Target: target})
	if err != nil {
		return err
	}
	if ctx.Quiet {
		return nil
	}
	return verify.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
