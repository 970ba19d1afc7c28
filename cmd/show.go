package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-opkeychain/pkg/app/show"
)

var showCmd = &cobra.Command{
	Use:   "show [keychain-path] [item-uuid]",
	Short: "Decrypt and print one item",
	Long: `Decrypt a single item and print its payload. The UUID may be given with
or without dashes, in any case.

Examples:
  opkeychain show 1Password.cloudkeychain 2A632FDD32F5445E91EB5636C7580447
  opkeychain show 1Password.agilekeychain 00925aac-c28b-482a-bfe6-50fcd42f82cd -o yaml`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, keychainPath, uuid string) error {
	ctx := newAppContext(cmd)

	target, err := keychainTarget(keychainPath)
	if err != nil {
		return err
	}

	response, err := show.Handle(ctx, &show.Request{Target: target, UUID: uuid})
	if err != nil {
		return err
	}
	return show.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
