package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sitesync "github.com/statichost/site-sync"
	"github.com/statichost/site-sync/logging"
)

var listBucketsCmd = &cobra.Command{
	Use:   "list-buckets",
	Short: "List all buckets owned by the configured credentials",
	Run: func(cmd *cobra.Command, args []string) {
		logging.ReloadGlobalLogger()

		buckets, err := sitesync.ListBuckets(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("Failed to list buckets")
			os.Exit(1)
		}

		for _, b := range buckets {
			fmt.Fprintln(cmd.OutOrStdout(), b)
		}
	},
}

func init() {
	rootCmd.AddCommand(listBucketsCmd)
}
