package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	logwriter "github.com/sirupsen/logrus/hooks/writer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/cmd/publish"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/cmd/replay"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/cmd/report"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/version"
)

const (
	logFile   = "stopwatch.log"
	envPrefix = "STOPWATCH"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stopwatch",
	Short: "Stopwatch",
	Long:  `Stopwatch replays recorded timer marks, reports the elapsed time between marks and exports the timer batches`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error

		// Validate logging level
		loglevel := viper.GetString("log-level")
		logrusLevel, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)

		// Additional log options
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})

		log.SetOutput(os.Stderr)
		if viper.GetBool("log-file-skip") {
			return
		}
		fdLog, err := os.OpenFile(logFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			log.Errorf("error opening file %s: %v", logFile, err)
		} else {
			log.AddHook(&logwriter.Hook{
				Writer: fdLog,
				LogLevels: []log.Level{
					log.PanicLevel,
					log.FatalLevel,
					log.ErrorLevel,
					log.WarnLevel,
					log.InfoLevel,
					log.DebugLevel,
				},
			})
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initBindFlag(flag string) {
	err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	if err != nil {
		log.Warnf("Unable to bind flag %s\n", flag)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "logging level")
	rootCmd.PersistentFlags().Bool("log-file-skip", false, "do not write logs to "+logFile)
	initBindFlag("config")
	initBindFlag("log-level")
	initBindFlag("log-file-skip")

	// Link in child commands
	rootCmd.AddCommand(replay.NewCmdReplay())
	rootCmd.AddCommand(report.NewCmdReport())
	rootCmd.AddCommand(publish.NewCmdPublish())
	rootCmd.AddCommand(version.NewCmdVersion())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("unable to read config file %s: %v", cfgFile, err)
		}
		log.Debugf("Using config file %s", viper.ConfigFileUsed())
	}
}
