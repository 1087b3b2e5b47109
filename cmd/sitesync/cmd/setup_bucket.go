package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sitesync "github.com/statichost/site-sync"
	"github.com/statichost/site-sync/logging"
	"github.com/statichost/site-sync/structs"
)

var setupBucketCmd = &cobra.Command{
	Use:   "setup-bucket <name>",
	Short: "Create a bucket and configure it for public website hosting",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Annotations = make(map[string]string)
		cmd.Annotations["error"] = ""
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		logging.ReloadGlobalLogger()

		region, _ := cmd.Flags().GetString("region")
		indexDoc, _ := cmd.Flags().GetString("index-document")
		errorDoc, _ := cmd.Flags().GetString("error-document")

		site := &structs.Site{
			Bucket: args[0],
			Region: region,
			Website: structs.Website{
				IndexDocument: indexDoc,
				ErrorDocument: errorDoc,
			},
		}

		if err := sitesync.Setup(ctx, site); err != nil {
			cmd.Annotations["error"] = err.Error()
			log.Error().
				Err(err).
				Str("bucket", site.Bucket).
				Msg("Failed to set up bucket")
		}
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		time.Sleep(1 * time.Second)
		if cmd.Annotations["error"] != "" {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(setupBucketCmd)

	setupBucketCmd.Flags().StringP("region", "r", os.Getenv("AWS_REGION"), "AWS region for the bucket")
	setupBucketCmd.Flags().String("index-document", "", "Index document (default index.html)")
	setupBucketCmd.Flags().String("error-document", "", "Error document (default error.html)")
}
