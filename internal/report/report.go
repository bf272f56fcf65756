// Package report buckets a finished plan for human-readable display: the
// same plain-text, markered output style the teacher's CLI commands use
// for static analysis summaries, adapted here to the planner's action
// taxonomy instead of task phases.
package report

import (
	"sort"
	"strings"

	"github.com/papapumpkin/shipwright/internal/planner"
)

// Grouped is the bucketized view of a finished plan, ready for display.
type Grouped struct {
	Excluded         []planner.InstallPlanAction
	AlreadyInstalled []planner.InstallPlanAction
	Rebuilt          []planner.InstallPlanAction
	New              []planner.InstallPlanAction
	OnlyInstall      []planner.InstallPlanAction
	Removed          []planner.RemovePlanAction

	// HasAutoSelected is true if any action in the plan was pulled in only
	// as a transitive dependency, not named directly by the caller.
	HasAutoSelected bool
}

// Group bucketizes actions per spec §4.E. When the plan contains any
// removal and recursive is false, it returns ErrNeedsRecursion wrapped in a
// *planner.PlanError instead of a Grouped result: the caller
// must re-invoke with the recursion flag before anything destructive runs.
func Group(actions []planner.AnyAction, recursive bool) (*Grouped, error) {
	g := &Grouped{}

	removedSpecs := make(map[string]bool)
	for _, a := range actions {
		if a.Remove != nil {
			removedSpecs[a.Remove.Spec.String()] = true
		}
	}

	for _, a := range actions {
		switch {
		case a.Remove != nil:
			g.Removed = append(g.Removed, *a.Remove)
			if a.Remove.RequestType == planner.AutoSelected {
				g.HasAutoSelected = true
			}

		case a.Install != nil:
			ia := *a.Install
			if ia.RequestType == planner.AutoSelected {
				g.HasAutoSelected = true
			}

			if removedSpecs[ia.Spec.String()] {
				g.Rebuilt = append(g.Rebuilt, ia)
				continue
			}

			switch ia.PlanType {
			case planner.Install:
				g.OnlyInstall = append(g.OnlyInstall, ia)
			case planner.BuildAndInstall:
				g.New = append(g.New, ia)
			case planner.AlreadyInstalled:
				if ia.RequestType == planner.UserRequested {
					g.AlreadyInstalled = append(g.AlreadyInstalled, ia)
				}
			case planner.Excluded:
				g.Excluded = append(g.Excluded, ia)
			}
		}
	}

	sortInstall(g.Excluded)
	sortInstall(g.AlreadyInstalled)
	sortInstall(g.Rebuilt)
	sortInstall(g.New)
	sortInstall(g.OnlyInstall)
	sort.Slice(g.Removed, func(i, j int) bool { return g.Removed[i].Spec.Name < g.Removed[j].Spec.Name })

	if len(g.Removed) > 0 && !recursive {
		return nil, &planner.PlanError{
			Category: planner.ImplicitRebuildWithoutRecurse,
			Err:      ErrNeedsRecursion,
		}
	}

	return g, nil
}

// ErrNeedsRecursion is wrapped by Group's returned *planner.PlanError when
// the plan would remove packages but the caller didn't opt into rebuilds.
var ErrNeedsRecursion = recursionError{}

type recursionError struct{}

func (recursionError) Error() string {
	return "plan requires removing installed packages; re-run with the recursion flag to allow rebuilds"
}

func sortInstall(actions []planner.InstallPlanAction) {
	sort.Slice(actions, func(i, j int) bool { return actions[i].Spec.Name < actions[j].Spec.Name })
}

// Render formats one install action for display: a leading marker for
// auto-selected vs. user-requested origin, its display name, and an
// " (from HEAD)" suffix when the action targets a HEAD-version build.
func Render(a planner.InstallPlanAction) string {
	return marker(a.RequestType) + a.DisplayName() + headSuffix(a.UseHead)
}

// RenderRemove formats one remove action for display.
func RenderRemove(a planner.RemovePlanAction) string {
	return marker(a.RequestType) + a.Spec.String()
}

func marker(rt planner.RequestType) string {
	if rt == planner.AutoSelected {
		return "  * "
	}
	return "    "
}

func headSuffix(useHead bool) string {
	if useHead {
		return " (from HEAD)"
	}
	return ""
}

// Summary renders every non-empty bucket as a human-readable multi-section
// report, in the same relative order vcpkg-style tooling prints them:
// excluded, already-installed, rebuilt, new, install-only, then the
// "additional packages were modified" footer.
func Summary(g *Grouped) string {
	var b strings.Builder

	section := func(title string, rows []string) {
		if len(rows) == 0 {
			return
		}
		b.WriteString(title)
		b.WriteString(":\n")
		b.WriteString(strings.Join(rows, "\n"))
		b.WriteString("\n")
	}

	section("The following packages are excluded", renderAll(g.Excluded))
	section("The following packages are already installed", renderAll(g.AlreadyInstalled))
	section("The following packages will be rebuilt", renderAll(g.Rebuilt))
	section("The following packages will be built and installed", renderAll(g.New))
	section("The following packages will be directly installed", renderAll(g.OnlyInstall))

	if g.HasAutoSelected {
		b.WriteString("Additional packages (*) will be modified to complete this operation.\n")
	}

	return b.String()
}

func renderAll(actions []planner.InstallPlanAction) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = Render(a)
	}
	return out
}
