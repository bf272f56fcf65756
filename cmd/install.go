package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/planner"
	"github.com/papapumpkin/shipwright/internal/portspec"
	"github.com/papapumpkin/shipwright/internal/report"
)

var installCmd = &cobra.Command{
	Use:   "install <spec>...",
	Short: "Plan and print the install actions needed to satisfy the given feature specs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
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

	grouped, err := report.Group(actions, viper.GetBool("recursive"))
	if err != nil {
		var pe *planner.PlanError
		if errors.As(err, &pe) && pe.Category == planner.ImplicitRebuildWithoutRecurse {
			return fmt.Errorf("%w (pass --recursive to allow it)", err)
		}
		return err
	}

	fmt.Print(report.Summary(grouped))
	return nil
}

// parseFeatureArgs parses CLI-facing "name[feature]:triplet" strings into
// FeatureSpecs, substituting defaultTriplet when a spec doesn't name one.
func parseFeatureArgs(args []string, defaultTriplet string) ([]portspec.FeatureSpec, error) {
	specs := make([]portspec.FeatureSpec, 0, len(args))
	for _, raw := range args {
		ref, err := portspec.ParseReference(raw)
		if err != nil {
			return nil, fmt.Errorf("cmd: parsing %q: %w", raw, err)
		}
		specs = append(specs, portspec.FeatureSpec{
			Spec:    ref.WithTriplet(defaultTriplet),
			Feature: ref.Feature,
		})
	}
	return specs, nil
}
