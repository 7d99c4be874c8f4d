package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alastai/grasch-lex/clog"
	_ "github.com/alastai/grasch-lex/clog/glog"
	"github.com/alastai/grasch-lex/cmd/grasch/command"
	"github.com/alastai/grasch-lex/internal/config"
	"github.com/alastai/grasch-lex/version"
)

var rootCmd = &cobra.Command{
	Use:   "grasch",
	Short: "Content-type lattice and conformance checker for property graph schemas.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog requires flags to be parsed
		flag.CommandLine.Parse([]string{})
		if file := viper.GetString("config"); file != "" {
			viper.SetConfigFile(file)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("could not read config file %q: %v", file, err)
			}
			clog.Infof("using config file: %s", viper.ConfigFileUsed())
		}
		return nil
	},
}

func init() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to an explicit configuration file")
	rootCmd.PersistentFlags().String("metrics", "", "write prometheus metrics to this file on exit")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag(config.KeyMetricsFile, rootCmd.PersistentFlags().Lookup("metrics"))
	viper.SetEnvKeyReplacer(command.EnvReplacer)

	rootCmd.AddCommand(
		command.NewLatticeCmd(),
		command.NewExportCmd(),
		command.NewValidateCmd(),
		command.NewVersionCmd(),
	)
}

func main() {
	rootCmd.Version = version.Version
	err := rootCmd.Execute()
	if ferr := command.WriteMetrics(); ferr != nil {
		clog.Errorf("%v", ferr)
	}
	if err != nil {
		os.Exit(1)
	}
}
