// Package binarycache implements the minimal on-disk BinaryCache the export
// planner needs: whether a pre-built archive exists for a spec, nothing
// more. Fetching, uploading, or pruning archives is out of scope.
package binarycache

import (
	"os"
	"path/filepath"

	"github.com/papapumpkin/shipwright/internal/portspec"
)

// DirCache reports a spec as built if "<root>/<name>-<triplet>.zip" exists.
type DirCache struct {
	root string
}

// NewDirCache returns a DirCache rooted at dir.
func NewDirCache(dir string) *DirCache {
	return &DirCache{root: dir}
}

func (c *DirCache) Has(spec portspec.PackageSpec) bool {
	path := filepath.Join(c.root, spec.Name+"-"+spec.Triplet+".zip")
	_, err := os.Stat(path)
	return err == nil
}
