package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/shipwright/internal/portspec"
)

// portfileDoc mirrors the on-disk TOML schema:
//
//	[port]
//	name = "curl"
//
//	[core]
//	depends = ["zlib", "openssl[ssl]"]
//
//	[[feature]]
//	name = "http2"
//	depends = ["nghttp2"]
type portfileDoc struct {
	Port struct {
		Name string `toml:"name"`
	} `toml:"port"`
	Core struct {
		Depends []string `toml:"depends"`
	} `toml:"core"`
	Feature []struct {
		Name    string   `toml:"name"`
		Depends []string `toml:"depends"`
	} `toml:"feature"`
}

// Diagnostics receives non-fatal parse problems encountered by DirCatalog so
// the caller can surface them in its own log without the catalog crashing a
// lookup that didn't actually need the broken port.
type Diagnostics interface {
	Warn(format string, args ...any)
}

// DirCatalog resolves a port name to "<root>/<name>/portfile.toml", parses
// it, and caches the result (hit, miss, or parse-failure-as-miss) for the
// life of the catalog. It never invalidates the cache: per the planner's
// concurrency model, one DirCatalog backs exactly one planning run.
type DirCatalog struct {
	root  string
	diag  Diagnostics
	cache map[string]*PortDescriptor // nil value = resolved absent
}

// NewDirCatalog creates a DirCatalog rooted at dir. diag may be nil, in
// which case parse diagnostics are discarded.
func NewDirCatalog(dir string, diag Diagnostics) *DirCatalog {
	return &DirCatalog{root: dir, diag: diag, cache: make(map[string]*PortDescriptor)}
}

func (d *DirCatalog) Get(name string) (*PortDescriptor, bool) {
	if cached, hit := d.cache[name]; hit {
		return cached, cached != nil
	}

	desc, ok := d.resolve(name)
	if ok {
		d.cache[name] = desc
	} else {
		d.cache[name] = nil
	}
	return desc, ok
}

func (d *DirCatalog) resolve(name string) (*PortDescriptor, bool) {
	path := filepath.Join(d.root, name, "portfile.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			d.warn("catalog: reading %s: %v", path, err)
		}
		return nil, false
	}

	var doc portfileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		d.warn("catalog: parsing %s: %v", path, err)
		return nil, false
	}

	if doc.Port.Name == "" {
		doc.Port.Name = name
	}

	desc := &PortDescriptor{
		Name:             doc.Port.Name,
		CoreDependencies: toFeatureSpecs(doc.Core.Depends),
	}
	for _, f := range doc.Feature {
		desc.Features = append(desc.Features, FeatureDescriptor{
			Name:         f.Name,
			Dependencies: toFeatureSpecs(f.Depends),
		})
	}
	return desc, true
}

func (d *DirCatalog) warn(format string, args ...any) {
	if d.diag == nil {
		return
	}
	d.diag.Warn(format, args...)
}

// toFeatureSpecs parses "name" or "name[feature]" dependency strings into
// FeatureSpecs with the triplet left blank; the planner fills it in with
// the requesting cluster's triplet.
func toFeatureSpecs(raw []string) []portspec.FeatureSpec {
	out := make([]portspec.FeatureSpec, 0, len(raw))
	for _, r := range raw {
		ref, err := portspec.ParseReference(r)
		if err != nil {
			// Malformed dependency strings are a port-authoring error, not a
			// transient lookup failure; surface as a dependency nobody can
			// satisfy rather than silently dropping it.
			out = append(out, portspec.FeatureSpec{Spec: portspec.PackageSpec{Name: fmt.Sprintf("<invalid:%s>", r)}})
			continue
		}
		out = append(out, portspec.FeatureSpec{
			Spec:    portspec.PackageSpec{Name: ref.Name},
			Feature: ref.Feature,
		})
	}
	return out
}
