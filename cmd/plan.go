package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/planner"
	"github.com/papapumpkin/shipwright/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan <spec>...",
	Short: "Preview the install plan for the given feature specs without the recursion safety gate",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

// runPlan is install's dry-run sibling: it always groups with recursive set
// to true so a rebuild never aborts the preview, then tells the caller
// whether install would actually need --recursive to apply it.
func runPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	triplet := viper.GetString("triplet")

	specs, err := parseFeatureArgs(args, triplet)
	if err != nil {
		return err
	}

	_, cat, db, err := openWorld(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	actions, err := planner.CreateFeatureInstallPlan(cat, specs, db)
	if err != nil {
		return err
	}

	grouped, err := report.Group(actions, true)
	if err != nil {
		return err
	}

	fmt.Print(report.Summary(grouped))
	if len(grouped.Removed) > 0 {
		fmt.Println("note: this plan requires removing installed packages; `install` will need --recursive.")
	}
	return nil
}
