// Package catalog resolves port names to PortDescriptors. It is the
// planner's only window into "what does this port declare" and is
// intentionally unaware of triplets: the planner substitutes the
// requesting cluster's triplet onto each declared dependency itself.
package catalog

import "github.com/papapumpkin/shipwright/internal/portspec"

// FeatureDescriptor is one named, optional build variant of a port.
type FeatureDescriptor struct {
	Name         string
	Dependencies []portspec.FeatureSpec // triplet left blank; caller fills it in
}

// PortDescriptor is the catalog's view of one port, independent of triplet.
type PortDescriptor struct {
	Name             string
	CoreDependencies []portspec.FeatureSpec
	Features         []FeatureDescriptor
}

// Feature looks up a named feature descriptor (not including "core", which
// callers reach via CoreDependencies). Returns false if undeclared.
func (p *PortDescriptor) Feature(name string) (FeatureDescriptor, bool) {
	for _, f := range p.Features {
		if f.Name == name {
			return f, true
		}
	}
	return FeatureDescriptor{}, false
}

// Catalog resolves a port name to its descriptor. Absence is reported by
// the boolean, not an error: a missing port is only ever fatal to the
// caller that actually needed it.
type Catalog interface {
	Get(name string) (*PortDescriptor, bool)
}
