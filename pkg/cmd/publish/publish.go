package publish

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/config"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/publish"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/version"
)

const cmdName = "publish"

func NewCmdPublish() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "publish stopwatch.json [files...]",
		Example: "stopwatch publish /tmp/stopwatch/* --bucket my-bucket --region us-east-1",
		Short:   "Publish exported stopwatch files to a S3 bucket.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := &publish.Config{
				Bucket: viper.GetString(config.Key(cmdName, "bucket")),
				Region: viper.GetString(config.Key(cmdName, "region")),
				Prefix: viper.GetString(config.Key(cmdName, "prefix")),
				DryRun: viper.GetBool(config.Key(cmdName, "dry-run")),
				Metadata: map[string]string{
					"version": version.Version.Version,
					"commit":  version.Version.Commit,
				},
			}
			log.Info("Publishing the stopwatch files to storage...")
			uris, err := publish.Upload(cfg, args)
			if err != nil {
				log.Error(errors.Wrap(err, "could not publish files"))
				os.Exit(1)
			}
			log.Infof("%d files published", len(uris))
		},
		Args: cobra.MinimumNArgs(1),
	}

	cmd.Flags().String("bucket", "", "Bucket name to upload the files.")
	cmd.Flags().String("region", "us-east-1", "Bucket region.")
	cmd.Flags().String("prefix", publish.DefaultPrefix, "Object key prefix.")
	cmd.Flags().Bool("dry-run", false, "Log the object keys without uploading.")
	config.BindFlags(viper.GetViper(), cmdName, cmd.Flags())

	return cmd
}
