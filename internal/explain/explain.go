// Package explain generates narrative clinical explanations for risk
// results through an LLM service. It sits strictly outside the core
// pipeline: explanations are requested after classification completes, and
// any failure degrades to a placeholder rather than affecting results.
package explain

import "context"

// Explanation is the narrative block attached to one drug's output document.
type Explanation struct {
	Summary              string `json:"summary"`
	BiologicalMechanism  string `json:"biological_mechanism"`
	VariantSignificance  string `json:"variant_significance"`
	ClinicalImplications string `json:"clinical_implications"`
	Success              bool   `json:"success"`
}

// Request carries the classified facts an explainer may narrate. It is a
// flat snapshot so implementations need no access to pipeline types.
type Request struct {
	Drug           string
	Gene           string
	Diplotype      string
	Phenotype      string
	RiskLabel      string
	Severity       string
	Recommendation string
}

// Explainer produces an explanation for one classified drug.
type Explainer interface {
	Explain(ctx context.Context, req Request) (Explanation, error)
}

// Nop is the fallback explainer used when no API key is configured.
type Nop struct{}

// Explain returns the standard no-key placeholder.
func (Nop) Explain(context.Context, Request) (Explanation, error) {
	return Explanation{Summary: "No API key.", Success: false}, nil
}
