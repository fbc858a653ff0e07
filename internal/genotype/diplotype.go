// Package genotype resolves detected variants into star-allele diplotypes
// and metabolizer phenotypes for each panel gene.
package genotype

import (
	"fmt"

	"github.com/pharmaguard/pharmaguard/internal/panel"
)

// Diplotype is the pair of star alleles resolved for a gene.
type Diplotype struct {
	Allele1 string
	Allele2 string
}

// String renders the conventional slash form, e.g. "*1/*4".
func (d Diplotype) String() string {
	return fmt.Sprintf("%s/%s", d.Allele1, d.Allele2)
}

// WildType is the homozygous-reference diplotype assumed when a gene has no
// detected variants.
var WildType = Diplotype{Allele1: "*1", Allele2: "*1"}

// Unresolved marks a gene whose detected variants matched no known allele
// signature. It is the only diplotype that maps to phenotype Unknown.
var Unresolved = Diplotype{Allele1: "*?", Allele2: "*?"}

// DetectedVariant is a variant surfaced to the output, annotated with the
// star allele it matched (or functional status Unknown if it matched none).
type DetectedVariant struct {
	RSID             string
	Gene             panel.Gene
	StarAllele       string
	Ref              string
	Alt              string
	FunctionalStatus panel.FunctionalStatus
}

// GeneCall is the resolved genotype for one panel gene.
type GeneCall struct {
	Gene          panel.Gene
	Diplotype     Diplotype
	Phenotype     panel.Phenotype
	ActivityScore float64
	// Variants lists every detected variant for the gene, matched or not.
	Variants []DetectedVariant
	// Supporting counts the variants whose signatures corroborate the
	// diplotype; it drives the classifier's confidence scaling.
	Supporting int
	// WildType is true when the gene had no detected variants and the call
	// is the homozygous-reference assumption.
	WildType bool
}

// Result holds one call per panel gene, complete even for genes with no
// detected variants.
type Result struct {
	calls map[panel.Gene]GeneCall
}

// Call returns the call for g. The second return is false only for
// non-panel genes.
func (r *Result) Call(g panel.Gene) (GeneCall, bool) {
	c, ok := r.calls[g]
	return c, ok
}

// Calls returns all gene calls in panel-definition order.
func (r *Result) Calls() []GeneCall {
	out := make([]GeneCall, 0, len(panel.Genes))
	for _, g := range panel.Genes {
		if c, ok := r.calls[g]; ok {
			out = append(out, c)
		}
	}
	return out
}
