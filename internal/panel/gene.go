// Package panel defines the fixed pharmacogene panel: supported genes, their
// star alleles with variant signatures and activity values, and the per-gene
// activity-score thresholds that map a diplotype to a metabolizer phenotype.
// The definition is built once at startup and is read-only thereafter, so it
// is safe to share across concurrent pipeline runs.
package panel

// Gene identifies one of the six supported pharmacogenes.
type Gene string

const (
	CYP2D6  Gene = "CYP2D6"
	CYP2C19 Gene = "CYP2C19"
	CYP2C9  Gene = "CYP2C9"
	SLCO1B1 Gene = "SLCO1B1"
	TPMT    Gene = "TPMT"
	DPYD    Gene = "DPYD"
)

// Genes lists the supported genes in canonical panel order. Detected-gene
// sets and per-gene output follow this order, never input discovery order.
var Genes = []Gene{CYP2D6, CYP2C19, CYP2C9, SLCO1B1, TPMT, DPYD}

// IsValid reports whether g is one of the six panel genes.
func (g Gene) IsValid() bool {
	switch g {
	case CYP2D6, CYP2C19, CYP2C9, SLCO1B1, TPMT, DPYD:
		return true
	}
	return false
}

func (g Gene) String() string { return string(g) }

// Phenotype is the metabolizer status derived from a diplotype's summed
// activity score.
type Phenotype string

const (
	PhenotypePoor         Phenotype = "Poor"
	PhenotypeIntermediate Phenotype = "Intermediate"
	PhenotypeNormal       Phenotype = "Normal"
	PhenotypeRapid        Phenotype = "Rapid"
	PhenotypeUltrarapid   Phenotype = "Ultrarapid"
	// PhenotypeUnknown marks a gene whose detected variants matched no known
	// allele signature. It is never used for genes with no detected variants
	// at all; those resolve to the wild-type Normal call.
	PhenotypeUnknown Phenotype = "Unknown"
)

// IsValid reports whether p is a member of the closed phenotype set.
func (p Phenotype) IsValid() bool {
	switch p {
	case PhenotypePoor, PhenotypeIntermediate, PhenotypeNormal,
		PhenotypeRapid, PhenotypeUltrarapid, PhenotypeUnknown:
		return true
	}
	return false
}

func (p Phenotype) String() string { return string(p) }
