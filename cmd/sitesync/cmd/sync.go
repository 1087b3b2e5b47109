package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sitesync "github.com/statichost/site-sync"
	"github.com/statichost/site-sync/config"
	"github.com/statichost/site-sync/logging"
)

type syncWebsite struct {
	IndexDocument string `yaml:"indexDocument,omitempty"`
	ErrorDocument string `yaml:"errorDocument,omitempty"`
}

type syncSite struct {
	Bucket  string      `yaml:"bucket"`
	Source  string      `yaml:"source"`
	Region  string      `yaml:"region,omitempty"`
	Website syncWebsite `yaml:"website,omitempty"`
}

type syncConfig struct {
	S3 struct {
		Region string `yaml:"region,omitempty"`
	} `yaml:"s3,omitempty"`
	Sync struct {
		PartSize int64      `yaml:"partSize,omitempty"`
		FailFast bool       `yaml:"failFast"`
		Sites    []syncSite `yaml:"sites"`
	} `yaml:"sync"`
}

var syncCmd = &cobra.Command{
	Use:   "sync <path> <bucket>",
	Short: "Sync a local directory to a bucket",
	Args:  cobra.ExactArgs(2),
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Annotations = make(map[string]string)
		cmd.Annotations["error"] = ""
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-c
			cancel()
			time.Sleep(1 * time.Second)
			os.Exit(0)
		}()

		logging.ReloadGlobalLogger()

		log.Info().Msg("Starting Site Sync")

		cnf := syncConfig{}
		cnf.S3.Region, _ = cmd.Flags().GetString("region")
		cnf.Sync.PartSize, _ = cmd.Flags().GetInt64("part-size")
		cnf.Sync.FailFast, _ = cmd.Flags().GetBool("fail-fast")

		cnf.Sync.Sites = append(cnf.Sync.Sites, syncSite{
			Source: args[0],
			Bucket: args[1],
		})

		tmpDir, err := os.MkdirTemp(os.TempDir(), "site-sync")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create temporary directory")
		}
		defer os.RemoveAll(tmpDir)

		b, err := yaml.Marshal(cnf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal configuration")
		}

		if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), b, 0644); err != nil {
			log.Fatal().Err(err).Msg("Failed to write configuration")
		}

		if err := config.InitConfig(filepath.Join(tmpDir, "config.yaml")); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize config")
		}

		sitesync.Reload()

		sites := config.SyncSites.Sites()

		if err := sitesync.RunOnce(ctx, sites); err != nil {
			cmd.Annotations["error"] = err.Error()
			log.Error().
				Stack().
				Err(err).
				Msg("Error running Site Sync")
		}

		log.Info().Msg("Shutting down Site Sync")
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		time.Sleep(1 * time.Second)
		if cmd.Annotations["error"] != "" {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Int64P("part-size", "p", 8*1024*1024, "Chunk size in bytes used for ETag computation and multipart uploads")
	syncCmd.Flags().StringP("region", "r", os.Getenv("AWS_REGION"), "AWS region")
	syncCmd.Flags().Bool("fail-fast", false, "Abort on the first per-file error instead of aggregating")
}
