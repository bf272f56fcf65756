package planner

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/shipwright/internal/portspec"
)

// Category tags a PlanError with the taxonomy from the planner's error
// design: everything but StaleOriginalFeature is fatal, and the caller
// switches on Category to decide exit behavior rather than parsing Error().
type Category string

const (
	UnsatisfiableDependency       Category = "unsatisfiable_dependency"
	MissingRootPort               Category = "missing_root_port"
	FeatureNotFound               Category = "feature_not_found"
	StaleOriginalFeature          Category = "stale_original_feature"
	EmptyParagraph                Category = "empty_paragraph"
	ImplicitRebuildWithoutRecurse Category = "implicit_rebuild_without_recurse"
)

// PlanError is a planning-time failure (or, for StaleOriginalFeature, a
// recoverable warning the caller chooses how to surface).
type PlanError struct {
	Category  Category
	Spec      portspec.FeatureSpec
	Requester portspec.FeatureSpec // zero value if there's no requester to name
	Err       error
}

func (e *PlanError) Error() string {
	if e.Requester.Spec.Name != "" {
		return fmt.Sprintf("%s: unable to satisfy dependency %s of %s: %v", e.Category, e.Spec, e.Requester, e.Err)
	}
	if e.Spec.Spec.Name == "" {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Category, e.Spec, e.Err)
}

func (e *PlanError) Unwrap() error { return e.Err }

// errBaseFeatureNotFound and friends are the sentinel values wrapped inside
// PlanError.Err. They are unexported, so only code in this package can
// errors.Is against them; other callers switch on PlanError.Category.
var (
	errBaseFeatureNotFound = errors.New("feature not found")
	errBaseMissingRootPort = errors.New("no port descriptor for package")
	errBaseUnsatisfiable   = errors.New("unable to satisfy dependency")
	errBaseImplicitRebuild = errors.New("plan contains implicit rebuilds; re-run with the recursion flag")
	errBaseEmptyParagraph  = errors.New("package has neither a cached binary nor a port")
)
