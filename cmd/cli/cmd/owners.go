package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ownersCmd = &cobra.Command{
	Use:   "owners [product_id...]",
	Short: "Resolve the owners whose catalogs contain the given products",
	Long: `Resolve which owners (tenants) have a catalog product matching any of the
given product ids, directly, as a provided product, or through a derived
product. The response contains owner keys and ids only.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewPoolClient(viper.GetString("url"))

		owners, err := client.GetOwnersWithProducts(args)
		if err != nil {
			cmd.Printf("Failed to resolve owners: %v\n", err)
			return
		}

		if len(owners) == 0 {
			cmd.Println("No owners match the given product ids.")
			return
		}

		cmd.Printf("%sOwners%s\n", colorBold, colorReset)
		cmd.Println("──────────────────────────────")
		for _, o := range owners {
			cmd.Printf("%sKey:%s %s  %sID:%s %s\n", colorDim, colorReset, o.Key, colorDim, colorReset, o.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(ownersCmd)
}
