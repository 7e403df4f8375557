package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [product_id...]",
	Short: "Dispatch pool refresh jobs for owners holding the given products",
	Long: `Dispatch one asynchronous "Refresh Pools" job per owner whose catalog
contains any of the given product ids. Owners that already have a refresh
job queued or running are returned with the existing job handle instead of
a duplicate. Poll the returned job ids with "poolctl status" or wait for
them with "poolctl wait".`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewPoolClient(viper.GetString("url"))

		handles, err := client.RefreshPools(args)
		if err != nil {
			cmd.Printf("Failed to dispatch refresh jobs: %v\n", err)
			return
		}

		if len(handles) == 0 {
			cmd.Println("No owners match the given product ids; nothing to refresh.")
			return
		}

		cmd.Printf("%sDispatched %d refresh job(s)%s\n", colorBold, len(handles), colorReset)
		cmd.Println("──────────────────────────────")
		for _, h := range handles {
			cmd.Printf("%s %s%s%s  owner=%s\n", statusIcon(h.Status), colorDim, h.ID, colorReset, h.OwnerKey)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
