package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/planner"
	"github.com/papapumpkin/shipwright/internal/report"
	"github.com/papapumpkin/shipwright/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <spec>...",
	Short: "Watch the port root for portfile.toml edits and re-print the install plan on every change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	triplet := viper.GetString("triplet")

	specs, err := parseFeatureArgs(args, triplet)
	if err != nil {
		return err
	}

	cfg, _, db, err := openWorld(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// A fresh DirCatalog is built on every replan: DirCatalog caches
	// negative and positive lookups for the life of one planning run, which
	// would otherwise hide the exact edits this command exists to surface.
	replan := func() {
		cat := catalog.NewDirCatalog(cfg.PortRoot, cliDiagnostics{verbose: cfg.Verbose})
		actions, err := planner.CreateFeatureInstallPlan(cat, specs, db)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		grouped, err := report.Group(actions, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Print(report.Summary(grouped))
	}

	replan()

	w, err := watch.New(cfg.PortRoot)
	if err != nil {
		return fmt.Errorf("cmd: starting watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("cmd: starting watcher: %w", err)
	}
	defer w.Stop()

	for c := range w.Changes {
		fmt.Printf("\n--- %s changed, re-planning ---\n", c.Port)
		replan()
	}
	return nil
}
