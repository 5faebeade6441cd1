// Package config binds command flags to viper, so every flag can also be set
// from the config file or from STOPWATCH_* environment variables.
package config

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Key returns the viper key of a command flag.
func Key(command, flag string) string {
	return command + "." + flag
}

// BindFlags binds every flag of fs under the command section.
func BindFlags(v *viper.Viper, command string, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(Key(command, f.Name), f); err != nil {
			log.Warnf("Unable to bind flag %s\n", f.Name)
		}
	})
}
