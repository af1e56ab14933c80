package models

// EvidenceContext is the grounding material for one audit run. It is
// assembled once by the caller and not mutated for the duration of the run.
type EvidenceContext struct {
	RepoDescription string // free-text repository description
	PRDiff          string // change diff or summary
	ResponseSummary string // model response summary; rating audits only
}
