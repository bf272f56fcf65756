package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/planner"
	"github.com/papapumpkin/shipwright/internal/report"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <spec>...",
	Short: "Plan a full rebuild of the given packages, preserving their currently installed features",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	triplet := viper.GetString("triplet")

	specs, err := parsePackageArgs(args, triplet)
	if err != nil {
		return err
	}

	_, cat, db, err := openWorld(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	pg := planner.NewPackageGraph(cat, db)
	for _, s := range specs {
		pg.Upgrade(s)
	}

	actions, err := pg.Serialize()
	if err != nil {
		return err
	}

	grouped, err := report.Group(actions, viper.GetBool("recursive"))
	if err != nil {
		var pe *planner.PlanError
		if errors.As(err, &pe) && pe.Category == planner.ImplicitRebuildWithoutRecurse {
			return fmt.Errorf("%w (pass --recursive to allow it)", err)
		}
		return err
	}

	for _, w := range pg.Warnings() {
		fmt.Println("warning:", w)
	}
	fmt.Print(report.Summary(grouped))
	return nil
}
