package planner

import (
	"fmt"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/portspec"
	"github.com/papapumpkin/shipwright/internal/statusdb"
)

// PackageGraph is the public entry point for feature-aware planning: call
// Install/Upgrade to register intent, then Serialize once to get the
// ordered action list. A PackageGraph is single-use; create a new one per
// planning run.
type PackageGraph struct {
	graph *ClusterGraph
	plan  *graphPlan
}

// NewPackageGraph seeds a cluster graph from the status database and
// returns a PackageGraph ready to accept Install/Upgrade calls.
func NewPackageGraph(cat catalog.Catalog, status statusdb.StatusDatabase) *PackageGraph {
	return &PackageGraph{
		graph: NewClusterGraph(cat, status),
		plan:  newGraphPlan(),
	}
}

// Install registers a user intent to have the given feature installed.
// spec.Feature may be "" (core), a concrete feature name, or
// portspec.AllFeatures ("*"), which expands to every feature the port
// currently declares plus core.
func (pg *PackageGraph) Install(spec portspec.FeatureSpec) error {
	cluster := pg.graph.Get(spec.Spec)
	cluster.RequestType = UserRequested

	if spec.Feature == portspec.AllFeatures {
		if cluster.Port == nil {
			return &PlanError{Category: MissingRootPort, Spec: spec, Err: errBaseMissingRootPort}
		}
		for _, f := range cluster.Port.Features {
			if err := markPlus(f.Name, cluster, pg.graph, pg.plan); err != nil {
				return fmt.Errorf("planner: unable to locate feature %s: %w", portspec.FeatureSpec{Spec: spec.Spec, Feature: f.Name}, err)
			}
		}
		if err := markPlus(portspec.CoreFeature, cluster, pg.graph, pg.plan); err != nil {
			return fmt.Errorf("planner: unable to locate feature %s: %w", spec, err)
		}
	} else {
		if err := markPlus(spec.Feature, cluster, pg.graph, pg.plan); err != nil {
			return fmt.Errorf("planner: unable to locate feature %s: %w", spec, err)
		}
	}

	pg.plan.installGraph.AddVertex(cluster)
	return nil
}

// Upgrade registers a user intent to fully rebuild spec, treating every
// currently-installed feature as if it must be reinstalled.
func (pg *PackageGraph) Upgrade(spec portspec.PackageSpec) {
	cluster := pg.graph.Get(spec)
	cluster.RequestType = UserRequested
	markMinus(cluster, pg.graph, pg.plan)
}

// Warnings returns every non-fatal StaleOriginalFeature warning produced so
// far by Install/Upgrade calls.
func (pg *PackageGraph) Warnings() []*PlanError {
	out := make([]*PlanError, len(pg.plan.warnings))
	copy(out, pg.plan.warnings)
	return out
}

// Serialize topologically sorts the remove and install subgraphs and
// emits a single linear action list: every remove action first (dependents
// before dependencies), then every install action (dependencies before
// dependents).
func (pg *PackageGraph) Serialize() ([]AnyAction, error) {
	removeOrder, err := pg.plan.removeGraph.TopoSort(pg.plan.removeGraph.Vertices())
	if err != nil {
		return nil, fmt.Errorf("planner: sorting remove graph: %w", err)
	}
	installOrder, err := pg.plan.installGraph.TopoSort(pg.plan.installGraph.Vertices())
	if err != nil {
		return nil, fmt.Errorf("planner: sorting install graph: %w", err)
	}

	var actions []AnyAction

	for _, c := range removeOrder {
		actions = append(actions, AnyAction{Remove: &RemovePlanAction{
			Spec:        c.Spec,
			PlanType:    Remove,
			RequestType: c.RequestType,
		}})
	}

	for _, c := range installOrder {
		if c.TransientUninstalled {
			if c.Port == nil {
				return nil, &PlanError{Category: MissingRootPort, Spec: portspec.FeatureSpec{Spec: c.Spec}, Err: fmt.Errorf("internal: cluster slated for install has no port")}
			}
			actions = append(actions, AnyAction{Install: &InstallPlanAction{
				Spec:        c.Spec,
				PlanType:    BuildAndInstall,
				RequestType: c.RequestType,
				Features:    c.ToInstallFeatures.Sorted(),
				Port:        c.Port,
			}})
			continue
		}

		if c.RequestType != UserRequested {
			// Auto-selected clusters that are already fully satisfied are
			// suppressed: nothing needs to happen for them.
			continue
		}
		actions = append(actions, AnyAction{Install: &InstallPlanAction{
			Spec:        c.Spec,
			PlanType:    AlreadyInstalled,
			RequestType: c.RequestType,
			Features:    c.OriginalFeatures.Sorted(),
		}})
	}

	return actions, nil
}
