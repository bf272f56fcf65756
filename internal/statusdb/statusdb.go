// Package statusdb models the set of currently installed package features.
// It is read-only from the planner's perspective; the SQLite-backed
// implementation also exposes write operations for a (not spec'd here)
// executor that applies a finished plan.
package statusdb

import "github.com/papapumpkin/shipwright/internal/portspec"

// InstalledRecord is one installed feature of one package. A package with
// no optional features installed still has exactly one record, for
// "core" (feature == portspec.CoreFeature).
type InstalledRecord struct {
	Spec    portspec.PackageSpec
	Feature string
	Depends []string // raw dependency references, as declared at install time
}

// StatusDatabase enumerates installed records.
type StatusDatabase interface {
	// All returns every installed record, in a stable, deterministic order.
	All() []InstalledRecord
	// FindInstalled returns the installed records for one package spec, in
	// the same relative order as All.
	FindInstalled(spec portspec.PackageSpec) []InstalledRecord
}
