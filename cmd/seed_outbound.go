package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"restaurant.GO/config"
	inventoryService "restaurant.GO/service/inventory"
)

var seedOutboundCmd = &cobra.Command{
	Use:   "inventory:seed-outbound",
	Short: "Create pending outbound tickets for batch items that have none yet",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		engine, err := inventoryService.NewFulfillmentEngine(db)
		if err != nil {
			fmt.Printf("Engine setup failed: %v\n", err)
			os.Exit(1)
		}
		result, err := engine.SeedOutbound()
		if err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seed complete: imported=%d skipped=%d\n", result.Imported, result.Skipped)
	},
}

func init() {
	rootCmd.AddCommand(seedOutboundCmd)
}
