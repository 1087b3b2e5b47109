package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statichost/site-sync/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sitesync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
