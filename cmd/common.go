package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/config"
	"github.com/papapumpkin/shipwright/internal/portspec"
	"github.com/papapumpkin/shipwright/internal/statusdb"
)

// parsePackageArgs parses CLI-facing "name:triplet" strings (no feature
// bracket) into PackageSpecs, substituting defaultTriplet when absent.
func parsePackageArgs(args []string, defaultTriplet string) ([]portspec.PackageSpec, error) {
	specs := make([]portspec.PackageSpec, 0, len(args))
	for _, raw := range args {
		ref, err := portspec.ParseReference(raw)
		if err != nil {
			return nil, fmt.Errorf("cmd: parsing %q: %w", raw, err)
		}
		specs = append(specs, ref.WithTriplet(defaultTriplet))
	}
	return specs, nil
}

// cliDiagnostics routes catalog parse warnings to stderr, prefixed so they
// are distinguishable from plan output.
type cliDiagnostics struct{ verbose bool }

func (d cliDiagnostics) Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// openWorld loads config and opens the on-disk catalog and status database
// every stateful subcommand needs. Callers must Close the returned status
// database.
func openWorld(ctx context.Context) (config.Config, *catalog.DirCatalog, *statusdb.SQLiteStatusDatabase, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("cmd: loading config: %w", err)
	}

	cat := catalog.NewDirCatalog(cfg.PortRoot, cliDiagnostics{verbose: cfg.Verbose})

	db, err := statusdb.OpenSQLiteStatusDatabase(ctx, cfg.StatusDBPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("cmd: opening status database: %w", err)
	}

	return cfg, cat, db, nil
}
