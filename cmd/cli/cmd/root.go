package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Poolctl is a command line tool for the poolplane entitlement service",
	Long: `poolctl is the command-line interface for poolplane, a multi-tenant
entitlement pool service.

Owners (tenants) keep their own product catalogs; products may bundle other
products as provided components or carry a derived sub-pool product. poolctl
answers which owners are affected by a set of product ids and triggers the
asynchronous pool refresh jobs for them.

Common workflows:

  Find owners whose catalogs contain a product:
    poolctl owners p1 p2

  Trigger pool refresh jobs for the affected owners:
    poolctl refresh p1

  Check a refresh job:
    poolctl status <job-id>

  Poll a refresh job until it finishes:
    poolctl wait <job-id>

Configuration:
  Set the API endpoint via a flag, an environment variable, or a config file:
    POOLPLANE_URL    API endpoint (default: http://localhost:7171)`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".poolctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".poolctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "POOLPLANE_VARNAME"
	viper.SetEnvPrefix("POOLPLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.poolctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:7171", "Poolplane server URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}
