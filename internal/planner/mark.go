package planner

import (
	"fmt"

	"github.com/papapumpkin/shipwright/internal/graph"
	"github.com/papapumpkin/shipwright/internal/portspec"
)

// graphPlan holds the two plan subgraphs the mark engine populates: the
// install graph (edges point from a cluster to its build dependency) and
// the remove graph (edges point from a cluster to its dependents, the
// reverse of build dependency, since removing C requires removing
// everything that still depends on it first).
type graphPlan struct {
	installGraph *graph.Graph[*Cluster]
	removeGraph  *graph.Graph[*Cluster]
	warnings     []*PlanError
}

func newGraphPlan() *graphPlan {
	return &graphPlan{
		installGraph: graph.New[*Cluster](),
		removeGraph:  graph.New[*Cluster](),
	}
}

// markPlus marks feature f of cluster C, and everything it transitively
// needs, for installation. It is mutually recursive with markMinus (via
// step 7 below) and memoizes on FeatureEdges.Plus so the recursion
// terminates even across the cross-calls.
func markPlus(feature string, c *Cluster, g *ClusterGraph, plan *graphPlan) error {
	feature = portspec.Normalize(feature)

	fe, ok := c.Feature(feature)
	if !ok {
		return &PlanError{Category: FeatureNotFound, Spec: portspec.FeatureSpec{Spec: c.Spec, Feature: feature}, Err: errBaseFeatureNotFound}
	}

	if fe.Plus {
		return nil // memoized: already marked
	}

	if !c.OriginalFeatures.Has(feature) {
		c.TransientUninstalled = true
	}

	if !c.TransientUninstalled {
		// Already installed and nothing forces a rebuild: no work needed.
		return nil
	}

	fe.Plus = true

	if c.OriginalFeatures.Len() > 0 {
		// Installing a feature on a partially-installed package forces a
		// removal-and-reinstall that preserves every originally installed
		// feature (see markMinus step 5).
		markMinus(c, g, plan)
	}

	plan.installGraph.AddVertex(c)
	c.ToInstallFeatures.Add(feature)

	if feature != portspec.CoreFeature {
		// All features implicitly depend on core.
		if err := markPlus(portspec.CoreFeature, c, g, plan); err != nil {
			// Impossible: every cluster with a port has a "core" entry.
			panic(fmt.Sprintf("planner: core feature missing on %s: %v", c.Spec, err))
		}
	}

	for _, dep := range fe.BuildEdges {
		depCluster := g.Get(dep.Spec)
		if err := markPlus(dep.Feature, depCluster, g, plan); err != nil {
			return &PlanError{
				Category:  UnsatisfiableDependency,
				Spec:      dep,
				Requester: portspec.FeatureSpec{Spec: c.Spec, Feature: feature},
				Err:       errBaseUnsatisfiable,
			}
		}
		if depCluster == c {
			// A feature depending on a sibling feature of the same package
			// is coalesced into one install action; recording a self-loop
			// would make the install graph cyclic.
			continue
		}
		if err := plan.installGraph.AddEdge(c, depCluster); err != nil {
			return fmt.Errorf("planner: recording install edge %s -> %s: %w", c.Spec, depCluster.Spec, err)
		}
	}

	return nil
}

// markMinus marks cluster C, and every cluster that depends on it
// (transitively), for removal-and-reinstall, then re-marks every feature
// that was originally installed so the rebuild preserves the prior feature
// set.
func markMinus(c *Cluster, g *ClusterGraph, plan *graphPlan) {
	if c.WillRemove {
		return
	}
	c.WillRemove = true
	plan.removeGraph.AddVertex(c)

	for _, featureName := range c.featureNamesInOrder() {
		fe, _ := c.Feature(featureName)
		for _, rd := range fe.RemoveEdges {
			depCluster := g.Get(rd.Spec)
			if depCluster != c {
				if err := plan.removeGraph.AddEdge(c, depCluster); err != nil {
					// Two packages declaring a mutual runtime dependency is a
					// status-database inconsistency this planner can't repair;
					// drop the redundant edge rather than abort the whole plan.
					_ = err
				}
			}
			markMinus(depCluster, g, plan)
		}
	}

	c.TransientUninstalled = true
	for _, orig := range c.OriginalFeatures.Sorted() {
		if err := markPlus(orig, c, g, plan); err != nil {
			// StaleOriginalFeature: the port no longer declares a feature
			// that is currently installed. Non-fatal by design; the warning
			// is collected here and exposed through PackageGraph.Warnings.
			plan.warnings = append(plan.warnings, &PlanError{
				Category: StaleOriginalFeature,
				Spec:     portspec.FeatureSpec{Spec: c.Spec, Feature: orig},
				Err:      err,
			})
		}
	}
}
