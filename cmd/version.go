package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("mutfix (unknown version)")
				return
			}

			version := info.Main.Version
			if version == "" {
				version = "(devel)"
			}

			cmd.Printf("mutfix %s\n", version)
			cmd.Printf("go     %s\n", info.GoVersion)

			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					cmd.Printf("commit %s\n", setting.Value)
				}
			}
		},
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
