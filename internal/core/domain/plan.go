package domain

import "slices"

// Decision is the outcome of build planning.
type Decision int

const (
	// DecisionSkip means the artifact is up to date.
	DecisionSkip Decision = iota
	// DecisionRebuild means the compile stage must run.
	DecisionRebuild
	// DecisionCleanRebuild means the platform output directory is wiped and rebuilt.
	DecisionCleanRebuild
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionSkip:
		return "skip"
	case DecisionRebuild:
		return "rebuild"
	case DecisionCleanRebuild:
		return "clean-rebuild"
	default:
		return "unknown"
	}
}

// Reason explains why a rebuild was chosen.
type Reason string

// Rebuild reasons.
const (
	ReasonForced          Reason = "forced rebuild"
	ReasonConfigMissing   Reason = "no previous build configuration"
	ReasonConfigChanged   Reason = "config changed after last build"
	ReasonFilesChanged    Reason = "sources were changed"
	ReasonInputSetChanged Reason = "source files were added or removed"
	ReasonMobileClean     Reason = "mobile platforms always build clean"
)

// Plan is the computed build decision for one invocation.
type Plan struct {
	Decision     Decision
	Reasons      []Reason
	Inputs       FileSet
	InputsDigest uint64
}

// NeedsBuild reports whether the compile stage has to run.
func (p Plan) NeedsBuild() bool {
	return p.Decision != DecisionSkip
}

// HasReason reports whether r contributed to the decision.
func (p Plan) HasReason(r Reason) bool {
	return slices.Contains(p.Reasons, r)
}
