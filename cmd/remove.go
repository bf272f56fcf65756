package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/planner"
	"github.com/papapumpkin/shipwright/internal/report"
)

var removeCmd = &cobra.Command{
	Use:   "remove <spec>...",
	Short: "Plan and print the remove actions needed to uninstall the given packages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	triplet := viper.GetString("triplet")

	specs, err := parsePackageArgs(args, triplet)
	if err != nil {
		return err
	}

	_, _, db, err := openWorld(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	actions, err := planner.CreateRemovePlan(specs, db)
	if err != nil {
		return err
	}

	for _, a := range actions {
		fmt.Println(report.RenderRemove(a))
	}
	return nil
}
