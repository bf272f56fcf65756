package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/binarycache"
	"github.com/papapumpkin/shipwright/internal/planner"
)

var exportCmd = &cobra.Command{
	Use:   "export <spec>...",
	Short: "Order the given packages and their dependencies for export, classifying each as already built or port-only",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("archive-dir", "archives", "directory of pre-built package archives")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	triplet := viper.GetString("triplet")
	archiveDir, _ := cmd.Flags().GetString("archive-dir")

	specs, err := parsePackageArgs(args, triplet)
	if err != nil {
		return err
	}

	_, cat, db, err := openWorld(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cache := binarycache.NewDirCache(archiveDir)
	actions, err := planner.CreateExportPlan(cat, cache, specs, db)
	if err != nil {
		return err
	}

	for _, a := range actions {
		status := "port only"
		if a.PlanType == planner.AlreadyBuilt {
			status = "already built"
		}
		fmt.Printf("%s: %s\n", a.Spec, status)
	}
	return nil
}
