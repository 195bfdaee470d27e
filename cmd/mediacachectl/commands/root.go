// Package commands implements the mediacachectl subcommands.
package commands

import (
	"github.com/spf13/cobra"
)

// storageRoot is the local-filesystem root shared by every subcommand,
// the same root a running server's "storage.root" config value points at.
var storageRoot string

var rootCmd = &cobra.Command{
	Use:   "mediacachectl",
	Short: "Operate the media stream cache directly against its storage root",
	Long: `mediacachectl drives internal/streamcache the same way the HTTP
streaming handler does, without a running server — useful for warming an
entry ahead of first request, or inspecting why one is stuck.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageRoot, "storage-root", "./data/encrypted", "Local-filesystem root the stream cache reads/writes under")
	rootCmd.AddCommand(warmCmd)
	rootCmd.AddCommand(inspectCmd)
}
