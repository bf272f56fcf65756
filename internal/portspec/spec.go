// Package portspec defines the identity types shared by every layer of the
// planner: a package is named by (name, triplet); a feature is named by
// (package, feature name). The empty feature string and the literal "core"
// are synonyms everywhere inside the graph; "*" is a user-input-only
// sentinel meaning "every feature of this port" and is expanded before it
// ever reaches a Cluster.
package portspec

import (
	"fmt"
	"strings"
)

// CoreFeature is the implicit feature present on every port.
const CoreFeature = "core"

// AllFeatures is the user-input sentinel requesting every declared feature.
const AllFeatures = "*"

// PackageSpec identifies one buildable package in one triplet.
type PackageSpec struct {
	Name    string
	Triplet string
}

func (p PackageSpec) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Triplet)
}

// FeatureSpec identifies one feature of one package. Feature is always
// normalized: callers should route raw/empty strings through Normalize
// before storing a FeatureSpec in a graph.
type FeatureSpec struct {
	Spec    PackageSpec
	Feature string
}

func (f FeatureSpec) String() string {
	if f.Feature == "" || f.Feature == CoreFeature {
		return f.Spec.String()
	}
	return fmt.Sprintf("%s[%s]:%s", f.Spec.Name, f.Feature, f.Spec.Triplet)
}

// Normalize rewrites the empty feature string to "core". It never returns "*";
// expanding "*" is the caller's responsibility (the planner's
// PackageGraph.Install does it).
func Normalize(feature string) string {
	if feature == "" {
		return CoreFeature
	}
	return feature
}

// Reference is a parsed user-facing request of the form "name[feature]:triplet"
// or "name:triplet" (implicit core) or "name[*]:triplet" (all features).
// Triplet is optional in the raw string; ParseReference leaves it empty when
// absent so the caller can substitute a default triplet.
type Reference struct {
	Name    string
	Feature string // "", a concrete feature name, or AllFeatures
	Triplet string
}

// ParseReference parses "name", "name:triplet", "name[feature]", or
// "name[feature]:triplet" into a Reference. An empty input is an error.
func ParseReference(raw string) (Reference, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Reference{}, fmt.Errorf("portspec: empty package reference")
	}

	ref := Reference{}
	name := s
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		end := strings.IndexByte(s, ']')
		if end < idx {
			return Reference{}, fmt.Errorf("portspec: unbalanced feature brackets in %q", raw)
		}
		ref.Feature = strings.TrimSpace(s[idx+1 : end])
		name = s[:idx] + s[end+1:]
	}

	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		ref.Triplet = name[idx+1:]
		name = name[:idx]
	}

	ref.Name = strings.TrimSpace(name)
	if ref.Name == "" {
		return Reference{}, fmt.Errorf("portspec: missing package name in %q", raw)
	}
	return ref, nil
}

// WithTriplet returns the PackageSpec for this reference, substituting
// defaultTriplet when the reference did not carry one.
func (r Reference) WithTriplet(defaultTriplet string) PackageSpec {
	t := r.Triplet
	if t == "" {
		t = defaultTriplet
	}
	return PackageSpec{Name: r.Name, Triplet: t}
}
