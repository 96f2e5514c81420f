package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haierkeys/note-discord-share/internal/app"
)

func init() {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the note-discord-share version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.VersionInfo(!short))
		},
	}
	versionCmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	rootCmd.AddCommand(versionCmd)
}
