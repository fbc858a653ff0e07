// Package vcf parses variant-call text into the per-gene panel result
// consumed by the genotype resolver. Parsing is tolerant: malformed data rows
// are recorded and skipped, and only a missing header or unreadable input is
// fatal.
package vcf

import (
	"fmt"

	"github.com/pharmaguard/pharmaguard/internal/panel"
)

// Zygosity describes how many chromosome copies carry the alternate allele.
type Zygosity string

const (
	Heterozygous Zygosity = "heterozygous"
	Homozygous   Zygosity = "homozygous"
)

// Variant is one called genomic variant. Immutable once parsed.
type Variant struct {
	Chrom    string
	Pos      int64
	RSID     string // linked reference-SNP id, "" if the ID column was "."
	Ref      string
	Alt      string
	Zygosity Zygosity
	// Gene is the attributed panel gene, or "" for variants outside the
	// panel (still counted toward the total).
	Gene panel.Gene
}

// Locus returns the variant position as "chrom:pos" for error messages.
func (v Variant) Locus() string {
	return fmt.Sprintf("%s:%d", v.Chrom, v.Pos)
}

// PanelResult aggregates one parsed variant file.
type PanelResult struct {
	// TotalVariants counts every accepted variant row, on-panel or not.
	TotalVariants int
	// DetectedGenes lists panel genes with at least one attributed variant,
	// in panel-definition order.
	DetectedGenes []panel.Gene
	// Variants groups attributed variants by gene.
	Variants map[panel.Gene][]Variant
	// Unattributed holds accepted variants that matched no panel signature.
	Unattributed []Variant
	// ParseErrors accumulates row-level problems that did not abort parsing.
	ParseErrors []string
}

// HasGene reports whether the gene carries at least one detected variant.
func (r *PanelResult) HasGene(g panel.Gene) bool {
	return len(r.Variants[g]) > 0
}
