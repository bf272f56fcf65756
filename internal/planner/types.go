package planner

import (
	"sort"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/portspec"
	"github.com/papapumpkin/shipwright/internal/statusdb"
)

// RequestType records whether a cluster was named directly by the caller
// or pulled in only as a transitive dependency.
type RequestType int

const (
	AutoSelected RequestType = iota
	UserRequested
)

// FeatureEdges holds the build-dependency and reverse remove-dependency
// edges for one feature of one cluster, plus the mark-engine's memoization
// flag for that feature.
type FeatureEdges struct {
	BuildEdges  []portspec.FeatureSpec
	RemoveEdges []portspec.FeatureSpec
	Plus        bool
}

// orderedStringSet is an insertion-ordered set of strings, used for
// OriginalFeatures and ToInstallFeatures: membership is logically
// unordered, but display output must be deterministic, so callers that
// need a deterministic rendering use Sorted() rather than relying on Go's
// (nonexistent) map order guarantees.
type orderedStringSet struct {
	order []string
	set   map[string]bool
}

func newOrderedStringSet() *orderedStringSet {
	return &orderedStringSet{set: make(map[string]bool)}
}

func (s *orderedStringSet) Add(v string) {
	if s.set[v] {
		return
	}
	s.set[v] = true
	s.order = append(s.order, v)
}

func (s *orderedStringSet) Has(v string) bool { return s.set[v] }

func (s *orderedStringSet) Len() int { return len(s.order) }

// Sorted returns the set's members in lexical order, for deterministic
// display per the planner's determinism contract.
func (s *orderedStringSet) Sorted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

// Cluster is the planner's working node for one (name, triplet) pair. It
// carries both catalog-derived (Port, Edges' BuildEdges) and status-derived
// (InstalledRecords, OriginalFeatures, Edges' RemoveEdges) state, plus the
// mark engine's intent flags.
type Cluster struct {
	Spec              portspec.PackageSpec
	Port              *catalog.PortDescriptor // nil if no longer in the catalog
	InstalledRecords  []statusdb.InstalledRecord
	OriginalFeatures  *orderedStringSet
	ToInstallFeatures *orderedStringSet

	edgeOrder []string // feature names, in the order their FeatureEdges were created
	edges     map[string]*FeatureEdges

	WillRemove           bool
	TransientUninstalled bool
	RequestType          RequestType
}

func newCluster(spec portspec.PackageSpec) *Cluster {
	return &Cluster{
		Spec:                 spec,
		OriginalFeatures:     newOrderedStringSet(),
		ToInstallFeatures:    newOrderedStringSet(),
		edges:                make(map[string]*FeatureEdges),
		TransientUninstalled: true,
		RequestType:          AutoSelected,
	}
}

// Feature returns the FeatureEdges for name, or nil, false if the cluster
// has no entry for it: neither declared on its port nor created by
// ensureFeature for an installed dependent's remove edge.
func (c *Cluster) Feature(name string) (*FeatureEdges, bool) {
	e, ok := c.edges[name]
	return e, ok
}

// ensureFeature returns the FeatureEdges for name, creating an empty one
// (and recording its position in edgeOrder) if absent. Used when wiring
// remove-edges, which may target a feature never declared by the current
// port (the feature existed when it was installed but the port changed).
func (c *Cluster) ensureFeature(name string) *FeatureEdges {
	if e, ok := c.edges[name]; ok {
		return e
	}
	e := &FeatureEdges{}
	c.edges[name] = e
	c.edgeOrder = append(c.edgeOrder, name)
	return e
}

// featureNamesInOrder returns every declared feature name (including
// "core") in the deterministic order FeatureEdges were created, used by
// mark_minus to walk remove_edges in a stable order.
func (c *Cluster) featureNamesInOrder() []string {
	out := make([]string, len(c.edgeOrder))
	copy(out, c.edgeOrder)
	return out
}

// loadFromPort populates edges from a resolved port descriptor, filtering
// nothing triplet-wise beyond substituting this cluster's triplet onto
// each declared (triplet-less) dependency.
func (c *Cluster) loadFromPort(port *catalog.PortDescriptor) {
	c.Port = port

	core := c.ensureFeature(portspec.CoreFeature)
	core.BuildEdges = withTriplet(port.CoreDependencies, c.Spec.Triplet)

	for _, f := range port.Features {
		fe := c.ensureFeature(f.Name)
		fe.BuildEdges = withTriplet(f.Dependencies, c.Spec.Triplet)
	}
}

func withTriplet(specs []portspec.FeatureSpec, triplet string) []portspec.FeatureSpec {
	out := make([]portspec.FeatureSpec, len(specs))
	for i, s := range specs {
		out[i] = portspec.FeatureSpec{
			Spec:    portspec.PackageSpec{Name: s.Spec.Name, Triplet: triplet},
			Feature: portspec.Normalize(s.Feature),
		}
	}
	return out
}

// ClusterGraph lazily materializes one Cluster per distinct PackageSpec
// encountered, seeded up front from every installed record in the status
// database and populated on demand from the catalog thereafter.
type ClusterGraph struct {
	catalog   catalog.Catalog
	clusters  map[portspec.PackageSpec]*Cluster
	order     []portspec.PackageSpec // insertion order, for deterministic iteration if ever needed
}

// NewClusterGraph seeds the graph from status and wires it to cat for
// lazy port resolution. This is the planner's two-pass initial seeding
// (spec 4.B): first every installed record is registered, then remove
// edges (the reverse of each record's declared dependencies) are wired,
// which requires every installed cluster to already exist.
func NewClusterGraph(cat catalog.Catalog, status statusdb.StatusDatabase) *ClusterGraph {
	g := &ClusterGraph{catalog: cat, clusters: make(map[portspec.PackageSpec]*Cluster)}

	records := status.All()

	for _, rec := range records {
		c := g.Get(rec.Spec)
		c.TransientUninstalled = false
		c.InstalledRecords = append(c.InstalledRecords, rec)
		c.OriginalFeatures.Add(portspec.Normalize(rec.Feature))
	}

	for _, rec := range records {
		feature := portspec.Normalize(rec.Feature)
		for _, raw := range rec.Depends {
			ref, err := portspec.ParseReference(raw)
			if err != nil {
				continue
			}
			depSpec := ref.WithTriplet(rec.Spec.Triplet)
			depCluster := g.Get(depSpec)
			depFeature := portspec.Normalize(ref.Feature)
			fe := depCluster.ensureFeature(depFeature)
			fe.RemoveEdges = append(fe.RemoveEdges, portspec.FeatureSpec{Spec: rec.Spec, Feature: feature})
		}
	}

	return g
}

// Get returns the cluster for spec, creating and populating it from the
// catalog on first access. Idempotent: repeated calls return the same
// *Cluster.
func (g *ClusterGraph) Get(spec portspec.PackageSpec) *Cluster {
	if c, ok := g.clusters[spec]; ok {
		return c
	}
	c := newCluster(spec)
	g.clusters[spec] = c
	g.order = append(g.order, spec)

	if port, ok := g.catalog.Get(spec.Name); ok {
		c.loadFromPort(port)
	}
	return c
}
