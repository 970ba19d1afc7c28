package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-opkeychain/pkg/app/list"
)

var (
	// Item filters (list command only)
	listTitle    string
	listCategory string
	listTrashed  bool
)

var listCmd = &cobra.Command{
	Use:   "list [keychain-path]",
	Short: "List item metadata",
	Long: `List the items of a keychain: uuid, title, category and update time.
Item payloads are not decrypted.

Examples:
  # List every login
  opkeychain list 1Password.agilekeychain --category Login

  # Titles starting with "bank", including trashed items
  opkeychain list 1Password.cloudkeychain --title "bank*" --trashed`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listTitle, "title", "t", "", "title pattern (wildcards: *, ?)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "category name (Login, Secure Note, ...)")
	listCmd.Flags().BoolVar(&listTrashed, "trashed", false, "include trashed items")
}

func runList(cmd *cobra.Command, keychainPath string) error {
	ctx := newAppContext(cmd)

	target, err := keychainTarget(keychainPath)
	if err != nil {
		return err
	}

	request := &list.Request{
		Target:         target,
		TitlePattern:   listTitle,
		Category:       listCategory,
		IncludeTrashed: listTrashed,
	}

	response, err := list.Handle(ctx, request)
	if err != nil {
		return err
	}
	return list.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
