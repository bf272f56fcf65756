// Top-level entry points: thin wrappers around PackageGraph plus the two
// simpler planners (remove, export) that don't need feature-granular
// reasoning at all.
package planner

import (
	"fmt"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/graph"
	"github.com/papapumpkin/shipwright/internal/portspec"
	"github.com/papapumpkin/shipwright/internal/statusdb"
)

// CreateFeatureInstallPlan runs the full feature-aware planner: register
// every requested feature spec with a fresh PackageGraph and serialize.
func CreateFeatureInstallPlan(cat catalog.Catalog, specs []portspec.FeatureSpec, status statusdb.StatusDatabase) ([]AnyAction, error) {
	pg := NewPackageGraph(cat, status)
	for _, spec := range specs {
		if err := pg.Install(spec); err != nil {
			return nil, err
		}
	}
	return pg.Serialize()
}

// CreateInstallPlan is the flag-less install surface: it has no way to
// express a rebuild to its caller, so it errors out if the underlying
// feature plan would require one.
func CreateInstallPlan(cat catalog.Catalog, specs []portspec.PackageSpec, status statusdb.StatusDatabase) ([]InstallPlanAction, error) {
	fspecs := make([]portspec.FeatureSpec, len(specs))
	for i, s := range specs {
		fspecs[i] = portspec.FeatureSpec{Spec: s}
	}

	actions, err := CreateFeatureInstallPlan(cat, fspecs, status)
	if err != nil {
		return nil, err
	}

	out := make([]InstallPlanAction, 0, len(actions))
	for _, a := range actions {
		if a.Install == nil {
			return nil, &PlanError{
				Category: ImplicitRebuildWithoutRecurse,
				Spec:     portspec.FeatureSpec{Spec: a.Remove.Spec},
				Err:      fmt.Errorf("%w: re-run with feature-package support", errBaseImplicitRebuild),
			}
		}
		out = append(out, *a.Install)
	}
	return out, nil
}

// CreateRemovePlan emits REMOVE for each installed input spec and
// NOT_INSTALLED otherwise, ordered so that dependents are removed before
// the packages they depend on. It consults only the status database —
// never the port catalog — using the raw, package-level (not
// feature-granular) depends lists recorded at install time.
func CreateRemovePlan(specs []portspec.PackageSpec, status statusdb.StatusDatabase) ([]RemovePlanAction, error) {
	requested := make(map[portspec.PackageSpec]bool, len(specs))
	for _, s := range specs {
		requested[s] = true
	}

	dependents := reverseDependents(status.All())
	g := buildReachableGraph(specs, func(s portspec.PackageSpec) []portspec.PackageSpec {
		return dependents[s]
	})

	order, err := g.TopoSort(specs)
	if err != nil {
		return nil, fmt.Errorf("planner: sorting remove graph: %w", err)
	}

	out := make([]RemovePlanAction, 0, len(order))
	for _, spec := range order {
		rt := AutoSelected
		if requested[spec] {
			rt = UserRequested
		}
		pt := NotInstalled
		if len(status.FindInstalled(spec)) > 0 {
			pt = Remove
		}
		out = append(out, RemovePlanAction{Spec: spec, PlanType: pt, RequestType: rt})
	}
	return out, nil
}

// BinaryCache reports whether a pre-built binary package is available for
// a spec, independent of whether its port still exists. create_export_plan
// is the only planner that consults it.
type BinaryCache interface {
	Has(spec portspec.PackageSpec) bool
}

// CreateExportPlan orders specs (and their transitive build dependencies)
// so dependencies precede dependents, classifying each as ALREADY_BUILT,
// PORT_AVAILABLE_BUT_NOT_BUILT, or erroring with EmptyParagraph if neither
// a cached binary nor a port descriptor exists for it.
func CreateExportPlan(cat catalog.Catalog, cache BinaryCache, specs []portspec.PackageSpec, status statusdb.StatusDatabase) ([]ExportPlanAction, error) {
	requested := make(map[portspec.PackageSpec]bool, len(specs))
	for _, s := range specs {
		requested[s] = true
	}

	deps := func(s portspec.PackageSpec) []portspec.PackageSpec {
		return exportDependencies(s, cat, status)
	}
	g := buildReachableGraph(specs, deps)

	order, err := g.TopoSort(specs)
	if err != nil {
		return nil, fmt.Errorf("planner: sorting export graph: %w", err)
	}

	out := make([]ExportPlanAction, 0, len(order))
	for _, spec := range order {
		rt := AutoSelected
		if requested[spec] {
			rt = UserRequested
		}

		var pt ExportPlanType
		switch {
		case cache != nil && cache.Has(spec):
			pt = AlreadyBuilt
		default:
			if _, ok := cat.Get(spec.Name); ok {
				pt = PortAvailableButNotBuilt
			} else {
				return nil, &PlanError{Category: EmptyParagraph, Spec: portspec.FeatureSpec{Spec: spec}, Err: errBaseEmptyParagraph}
			}
		}
		out = append(out, ExportPlanAction{Spec: spec, PlanType: pt, RequestType: rt})
	}
	return out, nil
}

// exportDependencies returns spec's build dependencies: from its installed
// records if it's installed, else flattened from its port descriptor.
func exportDependencies(spec portspec.PackageSpec, cat catalog.Catalog, status statusdb.StatusDatabase) []portspec.PackageSpec {
	if installed := status.FindInstalled(spec); len(installed) > 0 {
		seen := make(map[portspec.PackageSpec]bool)
		var out []portspec.PackageSpec
		for _, rec := range installed {
			for _, raw := range rec.Depends {
				ref, err := portspec.ParseReference(raw)
				if err != nil {
					continue
				}
				s := ref.WithTriplet(spec.Triplet)
				if seen[s] {
					continue
				}
				seen[s] = true
				out = append(out, s)
			}
		}
		return out
	}

	port, ok := cat.Get(spec.Name)
	if !ok {
		return nil
	}
	seen := make(map[portspec.PackageSpec]bool)
	var out []portspec.PackageSpec
	add := func(fs portspec.FeatureSpec) {
		s := portspec.PackageSpec{Name: fs.Spec.Name, Triplet: spec.Triplet}
		if seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, d := range port.CoreDependencies {
		add(d)
	}
	for _, f := range port.Features {
		for _, d := range f.Dependencies {
			add(d)
		}
	}
	return out
}

// reverseDependents inverts every installed record's raw depends list into
// a spec -> ordered, deduplicated list of dependents (packages that depend
// on spec), scoped to records of the same triplet as the dependent.
func reverseDependents(records []statusdb.InstalledRecord) map[portspec.PackageSpec][]portspec.PackageSpec {
	rev := make(map[portspec.PackageSpec][]portspec.PackageSpec)
	seen := make(map[[2]portspec.PackageSpec]bool)
	for _, r := range records {
		for _, raw := range r.Depends {
			ref, err := portspec.ParseReference(raw)
			if err != nil {
				continue
			}
			depSpec := ref.WithTriplet(r.Spec.Triplet)
			key := [2]portspec.PackageSpec{depSpec, r.Spec}
			if seen[key] {
				continue
			}
			seen[key] = true
			rev[depSpec] = append(rev[depSpec], r.Spec)
		}
	}
	return rev
}

// buildReachableGraph performs a breadth-first walk from roots using
// neighbors to discover every reachable vertex and edge, materializing
// them into a graph.Graph so TopoSort can be run against it.
func buildReachableGraph(roots []portspec.PackageSpec, neighbors func(portspec.PackageSpec) []portspec.PackageSpec) *graph.Graph[portspec.PackageSpec] {
	g := graph.New[portspec.PackageSpec]()
	visited := make(map[portspec.PackageSpec]bool)
	queue := append([]portspec.PackageSpec{}, roots...)
	for _, r := range roots {
		g.AddVertex(r)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for _, n := range neighbors(cur) {
			_ = g.AddEdge(cur, n) // an edge that would close a cycle (bad input data) is refused by AddEdge and dropped here
			if !visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return g
}
