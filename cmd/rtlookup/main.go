package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	logLevel       string
	envPrefix      = "RTLOOKUP"
	defaultCfgName = ".rtlookup"
	opts           Options
)

// Options are the settings shared by all subcommands.
type Options struct {
	Routes    string
	CacheSize int
	Output    string
}

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:          "rtlookup",
	Short:        "Longest-prefix-match lookups against a route file",
	SilenceUsage: true,
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(defaultCfgName)
	}

	// Read environment variables that match prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfgErr := v.ReadInConfig()

	bindFlags(rootCmd, v)

	// initialize logger
	initLogger()

	if cfgErr != nil {
		if _, notFound := cfgErr.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			log.Errorf("Read config error: %v", cfgErr)
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

// bindFlags applies viper values (config file or env) to the flags not
// set on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.PersistentFlags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				log.Fatalf("can't apply %s=%v: %v", f.Name, v.Get(f.Name), err)
			}
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s.yaml)", defaultCfgName))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warning, error")
	rootCmd.PersistentFlags().StringVar(&opts.Routes, "routes", "routes.yaml", "route file")
	rootCmd.PersistentFlags().IntVar(&opts.CacheSize, "cache-size", 0, "address lookup cache entries (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&opts.Output, "output", "text", "output format: text, json")

	rootCmd.AddCommand(lookupCmd, listCmd, dumpCmd)
}

func main() {
	// Initialize flags (command line parameters)
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
