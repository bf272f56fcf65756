package planner

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/shipwright/internal/catalog"
	"github.com/papapumpkin/shipwright/internal/portspec"
)

// InstallPlanType distinguishes how an install action reached the plan.
// Unknown must never appear in a finalized plan; it exists only as the
// zero value during construction.
type InstallPlanType int

const (
	InstallUnknown InstallPlanType = iota
	Install
	BuildAndInstall
	AlreadyInstalled
	Excluded
)

// RemovePlanType distinguishes a real removal from a no-op.
type RemovePlanType int

const (
	RemoveUnknown RemovePlanType = iota
	Remove
	NotInstalled
)

// InstallPlanAction is one install-side entry of a finished plan.
type InstallPlanAction struct {
	Spec        portspec.PackageSpec
	PlanType    InstallPlanType
	RequestType RequestType
	Features    []string // deterministic (lexically sorted) at construction time
	Port        *catalog.PortDescriptor // set only for BuildAndInstall
	UseHead     bool                    // true if this build should use a HEAD-version source
}

// DisplayName renders "name[f1,f2]:triplet", or bare "name:triplet" when
// Features is empty.
func (a InstallPlanAction) DisplayName() string {
	if len(a.Features) == 0 {
		return a.Spec.String()
	}
	return fmt.Sprintf("%s[%s]:%s", a.Spec.Name, strings.Join(a.Features, ","), a.Spec.Triplet)
}

// RemovePlanAction is one remove-side entry of a finished plan.
type RemovePlanAction struct {
	Spec        portspec.PackageSpec
	PlanType    RemovePlanType
	RequestType RequestType
}

// AnyAction is a sum of an install action and a remove action: exactly one
// of Install/Remove is non-nil.
type AnyAction struct {
	Install *InstallPlanAction
	Remove  *RemovePlanAction
}

// Spec returns the package spec this action concerns, regardless of kind.
func (a AnyAction) Spec() portspec.PackageSpec {
	if a.Install != nil {
		return a.Install.Spec
	}
	if a.Remove != nil {
		return a.Remove.Spec
	}
	panic("planner: AnyAction with neither Install nor Remove set")
}

// ExportPlanType distinguishes whether an exportable package is already
// built, only available as a port, or neither (fatal).
type ExportPlanType int

const (
	ExportUnknown ExportPlanType = iota
	AlreadyBuilt
	PortAvailableButNotBuilt
)

// ExportPlanAction is one entry of create_export_plan's output.
type ExportPlanAction struct {
	Spec        portspec.PackageSpec
	PlanType    ExportPlanType
	RequestType RequestType
}
